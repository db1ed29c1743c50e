package model

import "strings"

// PromotionType derives a human label of the promotion from its destination branch
func PromotionType(toBranch string) string {
	branch := strings.ToLower(strings.TrimSpace(toBranch))
	switch {
	case branch == "main", branch == "master", strings.HasPrefix(branch, "prod"):
		return "Production"
	case strings.HasPrefix(branch, "stag"):
		return "Staging"
	case strings.HasPrefix(branch, "dev"):
		return "Development"
	default:
		return strings.TrimSpace(toBranch)
	}
}
