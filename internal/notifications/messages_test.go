package notifications

import (
	"strings"
	"testing"

	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
)

func strPtr(v string) *string { return &v }

func TestBuildMessageNewOrder(t *testing.T) {
	event := NewOrderEvent(enums.OrderEventCreated)
	event.OrderNumber = "CA-20260101-001"
	event.CustomerName = "김철수"
	event.OrganizationName = strPtr("야구부")
	event.TotalAmount = 243000
	event.ItemCount = 12

	msg := BuildMessage(event)
	lines := strings.Split(msg, "\n")
	assert.Equal(t, "🆕 *신규 주문 접수*", lines[0])
	assert.Equal(t, divider, lines[1])
	assert.Contains(t, msg, "👤 고객: 김철수 (야구부)")
	assert.Contains(t, msg, "💰 결제금액: 243,000원")
	assert.Contains(t, msg, "📦 상품: 12개")
	assert.Equal(t, divider, lines[len(lines)-1])
}

func TestBuildMessageStatusChange(t *testing.T) {
	from := enums.OrderStatusPending
	event := NewOrderEvent(enums.OrderEventStatusChanged)
	event.OrderNumber = "CA-20260101-001"
	event.CustomerName = "김철수"
	event.FromStatus = &from
	event.ToStatus = enums.OrderStatusPreparing

	msg := BuildMessage(event)
	assert.Contains(t, msg, "📌 상태: 주문 접수 → 제작 준비")
	assert.NotContains(t, msg, "📝")

	event.Memo = strPtr("시안 확인 완료")
	assert.Contains(t, BuildMessage(event), "📝 메모: 시안 확인 완료")
}

func TestBuildMessageCancelled(t *testing.T) {
	event := NewOrderEvent(enums.OrderEventCancelled)
	event.OrderNumber = "CA-20260101-003"
	event.CustomerName = "이영희"
	event.OrganizationName = strPtr("")
	event.Memo = strPtr("고객 요청")

	msg := BuildMessage(event)
	assert.True(t, strings.HasPrefix(msg, "❌ *주문 취소*"))
	assert.Contains(t, msg, "👤 고객: 이영희\n")
	assert.Contains(t, msg, "📝 사유: 고객 요청")
}

func TestBuildMessageShippedWithoutTracking(t *testing.T) {
	event := NewOrderEvent(enums.OrderEventShipped)
	msg := BuildMessage(event)
	assert.Contains(t, msg, "🚚 택배사: 알 수 없음")
	assert.Contains(t, msg, "🔢 송장번호: -")
}

func TestBuildMessageUnknownType(t *testing.T) {
	event := OrderEvent{Type: "order.unknown", OrderNumber: "X-1"}
	assert.Equal(t, "📢 주문 알림: X-1", BuildMessage(event))
}
