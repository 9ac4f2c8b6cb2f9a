package notifications

import (
	"strings"

	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const divider = "━━━━━━━━━━━━━━━━"

var amountPrinter = message.NewPrinter(language.Korean)

// BuildMessage renders the preformatted text block posted to the webhook.
func BuildMessage(event OrderEvent) string {
	customer := event.CustomerDisplay()

	switch event.Type {
	case enums.OrderEventCreated:
		return strings.Join([]string{
			"🆕 *신규 주문 접수*",
			divider,
			"📋 주문번호: " + event.OrderNumber,
			"👤 고객: " + customer,
			"💰 결제금액: " + amountPrinter.Sprintf("%d", event.TotalAmount) + "원",
			"📦 상품: " + amountPrinter.Sprintf("%d", event.ItemCount) + "개",
			divider,
		}, "\n")

	case enums.OrderEventStatusChanged:
		from := "없음"
		if event.FromStatus != nil {
			from = event.FromStatus.Label()
		}
		to := "없음"
		if event.ToStatus != "" {
			to = event.ToStatus.Label()
		}
		lines := []string{
			"🔄 *주문 상태 변경*",
			divider,
			"📋 주문번호: " + event.OrderNumber,
			"👤 고객: " + customer,
			"📌 상태: " + from + " → " + to,
		}
		if memo := memoText(event); memo != "" {
			lines = append(lines, "📝 메모: "+memo)
		}
		return strings.Join(append(lines, divider), "\n")

	case enums.OrderEventShipped:
		carrier := "알 수 없음"
		if event.Carrier != "" {
			carrier = event.Carrier.Label()
		}
		tracking := event.TrackingNumber
		if tracking == "" {
			tracking = "-"
		}
		return strings.Join([]string{
			"📦 *배송 출발*",
			divider,
			"📋 주문번호: " + event.OrderNumber,
			"👤 고객: " + customer,
			"🚚 택배사: " + carrier,
			"🔢 송장번호: " + tracking,
			divider,
		}, "\n")

	case enums.OrderEventCancelled:
		lines := []string{
			"❌ *주문 취소*",
			divider,
			"📋 주문번호: " + event.OrderNumber,
			"👤 고객: " + customer,
		}
		if memo := memoText(event); memo != "" {
			lines = append(lines, "📝 사유: "+memo)
		}
		return strings.Join(append(lines, divider), "\n")
	}

	return "📢 주문 알림: " + event.OrderNumber
}

func memoText(event OrderEvent) string {
	if event.Memo == nil {
		return ""
	}
	return strings.TrimSpace(*event.Memo)
}
