package enums

import "fmt"

// ReviewStatus tracks moderation of a customer review.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

var validReviewStatuses = []ReviewStatus{
	ReviewStatusPending,
	ReviewStatusApproved,
	ReviewStatusRejected,
}

// String implements fmt.Stringer.
func (s ReviewStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ReviewStatus.
func (s ReviewStatus) IsValid() bool {
	for _, candidate := range validReviewStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseReviewStatus converts raw input into a ReviewStatus.
func ParseReviewStatus(value string) (ReviewStatus, error) {
	for _, candidate := range validReviewStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid review status %q", value)
}

// ReviewAuthorType distinguishes admin-curated reviews from customer submissions.
type ReviewAuthorType string

const (
	ReviewAuthorAdmin    ReviewAuthorType = "admin"
	ReviewAuthorCustomer ReviewAuthorType = "customer"
)

var validReviewAuthorTypes = []ReviewAuthorType{
	ReviewAuthorAdmin,
	ReviewAuthorCustomer,
}

// String implements fmt.Stringer.
func (a ReviewAuthorType) String() string {
	return string(a)
}

// IsValid reports whether the value is a known ReviewAuthorType.
func (a ReviewAuthorType) IsValid() bool {
	for _, candidate := range validReviewAuthorTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseReviewAuthorType converts raw input into a ReviewAuthorType.
func ParseReviewAuthorType(value string) (ReviewAuthorType, error) {
	for _, candidate := range validReviewAuthorTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid review author type %q", value)
}
