package services

import (
	"strings"

	"github.com/Lottie128/stem-mentor-platform-sub000/models"
)

// ibrProgress is the fixed status-to-progress mapping, applied on every
// status change.
var ibrProgress = map[models.IBRStatus]int{
	models.IBRSubmitted:         10,
	models.IBRReviewing:         30,
	models.IBRDocumentsRequired: 40,
	models.IBRInProgress:        60,
	models.IBRApproved:          100,
	models.IBRRejected:          0,
}

func ProgressForIBRStatus(s models.IBRStatus) int {
	return ibrProgress[s]
}

// NormalizeRequiredDocuments canonicalizes the required-documents input,
// which clients send either as a newline-delimited string or as a list.
func NormalizeRequiredDocuments(raw interface{}) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		return splitDocumentLines(v)
	case []string:
		return trimDocumentList(v)
	case []interface{}:
		items := make([]string, 0, len(v))
		for _, it := range v {
			if s, ok := it.(string); ok {
				items = append(items, s)
			}
		}
		return trimDocumentList(items)
	}
	return nil
}

func splitDocumentLines(s string) []string {
	return trimDocumentList(strings.Split(s, "\n"))
}

func trimDocumentList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if t := strings.TrimSpace(it); t != "" {
			out = append(out, t)
		}
	}
	return out
}
