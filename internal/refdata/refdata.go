// Package refdata holds the fixed suggestion lists behind the category and
// author selectors. The lists are compiled in; the selector never enforces
// membership, so entries may carry values outside of them.
package refdata

import (
	"strings"

	"golang.org/x/text/cases"
)

// Option is one selectable row. Department and Email are only set for team
// members; categories carry a name only.
type Option struct {
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
	Email      string `json:"email,omitempty"`
}

var categories = []Option{
	{Name: "공통사항"}, {Name: "가설사무실"}, {Name: "가설펜스"}, {Name: "안전시설물공사"}, {Name: "균열보수공사"},
	{Name: "마감용비계공사"}, {Name: "영구배수공사"}, {Name: "배수판공사"}, {Name: "보강토옹벽공사"},
	{Name: "조경공사"}, {Name: "조경시설물"}, {Name: "방음벽공사"}, {Name: "교통시설물공사"},
	{Name: "건축토공사"}, {Name: "파일공사"}, {Name: "부대토목공사"}, {Name: "산석옹벽공사"},
	{Name: "철근콘크리트공사"}, {Name: "철골공사"}, {Name: "흠음뿜칠공사"}, {Name: "데크공사"},
	{Name: "습식공사"}, {Name: "방수공사"}, {Name: "코킹공사"}, {Name: "석공사"},
	{Name: "도배공사"}, {Name: "인테리어공사"}, {Name: "내장목공사"}, {Name: "목창호"},
	{Name: "유리공사"}, {Name: "AL창호공사"}, {Name: "도장공사"}, {Name: "일반철물공사"},
	{Name: "특화철물공사"}, {Name: "자동문공사"}, {Name: "난간대공사"}, {Name: "현관방화문"},
	{Name: "AL중문공사"}, {Name: "전기공사"}, {Name: "설비공사"},
}

var teamMembers = []Option{
	{Name: "이길재", Department: "건축외주팀", Email: "gilee05@gsenc.com"},
	{Name: "강성현", Department: "건축외주팀", Email: "shkang5@gsenc.com"},
	{Name: "김민석", Department: "건축외주팀", Email: "mskim32@gsenc.com"},
	{Name: "김수남", Department: "건축외주팀", Email: "snkim@gsenc.com"},
	{Name: "김진아", Department: "건축외주팀", Email: "jakim@gsenc.com"},
	{Name: "김태윤", Department: "건축외주팀", Email: "tykim05@gsenc.com"},
	{Name: "박성민", Department: "건축외주팀", Email: "smpark100@gsenc.com"},
	{Name: "박영민", Department: "건축외주팀", Email: "ympark@gsenc.com"},
	{Name: "성준엽", Department: "건축외주팀", Email: "jysung01@gsenc.com"},
	{Name: "이병길", Department: "건축외주팀", Email: "bklee01@gsenc.com"},
	{Name: "임혜진", Department: "건축외주팀", Email: "hj@gsenc.com"},
	{Name: "정재영", Department: "건축외주팀", Email: "jyjeong9@gsenc.com"},
	{Name: "조경록", Department: "건축외주팀", Email: "krcho@gsenc.com"},
	{Name: "조아림", Department: "건축외주팀", Email: "arjo@gsenc.com"},
	{Name: "한현민", Department: "건축외주팀", Email: "hmhan@gsenc.com"},
}

// Categories returns a copy of the fixed construction-category list.
func Categories() []Option {
	out := make([]Option, len(categories))
	copy(out, categories)
	return out
}

// TeamMembers returns a copy of the team member directory.
func TeamMembers() []Option {
	out := make([]Option, len(teamMembers))
	copy(out, teamMembers)
	return out
}

// Filter narrows options by a case-insensitive substring match against the
// name or department. An empty search term returns the full list; no match
// returns an empty slice.
func Filter(options []Option, term string) []Option {
	term = strings.TrimSpace(term)
	if term == "" {
		out := make([]Option, len(options))
		copy(out, options)
		return out
	}

	folded := cases.Fold().String(term)
	out := make([]Option, 0, len(options))
	for _, opt := range options {
		name := cases.Fold().String(opt.Name)
		dept := cases.Fold().String(opt.Department)
		if strings.Contains(name, folded) || (opt.Department != "" && strings.Contains(dept, folded)) {
			out = append(out, opt)
		}
	}
	return out
}
