package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Item types for a procurement-review entry. The UI offers exactly these
// six values; anything else is rejected at validation time.
const (
	ItemTypeContract  = "외주계약"
	ItemTypeTender    = "외주입찰"
	ItemTypeQuotation = "견적조건"
	ItemTypeLineItems = "내역검토"
	ItemTypeApproval  = "품의/보고"
	ItemTypeNotice    = "기타공지"

	// TypeFilterAll matches every item type in list projections.
	TypeFilterAll = "전체"

	DefaultItemType = ItemTypeContract
)

var ItemTypes = []string{
	ItemTypeContract,
	ItemTypeTender,
	ItemTypeQuotation,
	ItemTypeLineItems,
	ItemTypeApproval,
	ItemTypeNotice,
}

// ValidItemType reports whether t is one of the fixed item types.
func ValidItemType(t string) bool {
	for _, it := range ItemTypes {
		if it == t {
			return true
		}
	}
	return false
}

// Attachment is the metadata for one uploaded file. It is immutable once
// attached; the blob itself lives in object storage under Key.
type Attachment struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	Size int64  `json:"size,omitempty"`
}

// AttachmentList is stored as a JSON array in a single column.
type AttachmentList []Attachment

func (a AttachmentList) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *AttachmentList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("cannot scan %T into AttachmentList", src)
	}
}

// Keys returns the storage keys of all attachments in order.
func (a AttachmentList) Keys() []string {
	keys := make([]string, 0, len(a))
	for _, att := range a {
		keys = append(keys, att.Key)
	}
	return keys
}

type Entry struct {
	ID          int64          `db:"id" json:"id"`
	TeamID      string         `db:"team_id" json:"team_id"`
	Category    string         `db:"category" json:"category"`
	ItemType    string         `db:"item_type" json:"item_type"`
	ReviewText  string         `db:"review_text" json:"review_text"`
	SharedAt    *string        `db:"shared_at" json:"shared_at"`
	AuthorName  *string        `db:"author_name" json:"author_name"`
	Note        *string        `db:"note" json:"note"`
	LinkURL     *string        `db:"link_url" json:"link_url"`
	Attachments AttachmentList `db:"attachments" json:"attachments"`
	CreatedBy   string         `db:"created_by" json:"created_by"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// fold normalizes a string for case-insensitive matching. Casers are
// stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// FilterEntries is the list projection behind the search box and the
// item-type filter chips. A row passes when the type filter matches (or is
// 전체) and the query, if non-empty, is a case-insensitive substring of any
// of category, item type, review text, author name, or note. Input order is
// preserved.
func FilterEntries(entries []*Entry, query, typeFilter string) []*Entry {
	text := fold(strings.TrimSpace(query))

	out := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		if typeFilter != "" && typeFilter != TypeFilterAll && e.ItemType != typeFilter {
			continue
		}
		if text != "" && !e.matchesQuery(text) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (e *Entry) matchesQuery(folded string) bool {
	fields := []string{e.Category, e.ItemType, e.ReviewText, deref(e.AuthorName), deref(e.Note)}
	for _, f := range fields {
		if strings.Contains(fold(f), folded) {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
