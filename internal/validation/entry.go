package validation

import (
	"net/url"
	"strings"
	"time"

	"github.com/teamjokbo/jokbo/internal/model"
)

// FieldErrors maps a form field to a user-facing message. It satisfies error
// so services can return it through the normal error path; handlers unwrap
// it into a 422 response.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// EntryInput is the candidate record produced by the entry form, before any
// backend call.
type EntryInput struct {
	Category   string `json:"category"`
	ItemType   string `json:"item_type"`
	ReviewText string `json:"review_text"`
	SharedAt   string `json:"shared_at"`
	AuthorName string `json:"author_name"`
	Note       string `json:"note"`
	LinkURL    string `json:"link_url"`
}

// ValidateEntry applies the form rules: category and review text required,
// item type one of the fixed enumeration (defaulted when unset), link URL
// well-formed or empty, shared date in YYYY-MM-DD form or empty. It mutates
// in only to apply the item-type default.
func ValidateEntry(in *EntryInput) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(in.Category) == "" {
		errs["category"] = "공종은 필수"
	}

	if in.ItemType == "" {
		in.ItemType = model.DefaultItemType
	}
	if !model.ValidItemType(in.ItemType) {
		errs["item_type"] = "구분 값이 올바르지 않습니다"
	}

	if strings.TrimSpace(in.ReviewText) == "" {
		errs["review_text"] = "검토사항은 필수"
	}

	if in.LinkURL != "" {
		u, err := url.Parse(in.LinkURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs["link_url"] = "URL 형식 확인!"
		}
	}

	if in.SharedAt != "" {
		_, err := time.Parse("2006-01-02", in.SharedAt)
		if err != nil {
			errs["shared_at"] = "날짜 형식은 YYYY-MM-DD 입니다"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
