package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "drops boilerplate lines",
			in:   "제1조(목적)\n법제처\n이 법은 근로 조건을 정한다.\n국가법령정보센터",
			want: "제1조(목적)\n이 법은 근로 조건을 정한다.",
		},
		{
			name: "drops bare page numbers",
			in:   "제1조(목적)\n12\n이 법은 근로 조건을 정한다.",
			want: "제1조(목적)\n이 법은 근로 조건을 정한다.",
		},
		{
			name: "keeps numbered headings",
			in:   "1. 총칙\n내용",
			want: "1. 총칙\n내용",
		},
		{
			name: "drops blank lines and trims",
			in:   "  첫 줄  \n\n   \n둘째 줄",
			want: "첫 줄\n둘째 줄",
		},
		{
			name: "collapses whitespace runs",
			in:   "제 1 조\t\t(목적)   규정",
			want: "제 1 조 (목적) 규정",
		},
		{
			name: "repairs hyphenation at line wraps",
			in:   "employ-\nment contract",
			want: "employment contract",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}
