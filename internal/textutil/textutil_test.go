package textutil

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "경제 뉴스", "경제 뉴스"},
		{"tags stripped", "<b>속보</b> 금리 <a href=\"x\">인상</a>", "속보 금리 인상"},
		{"entities decoded", "삼성 &amp; LG &quot;협력&quot;", "삼성 & LG \"협력\""},
		{"numeric entity", "A&#39;s plan", "A's plan"},
		{"whitespace collapsed", "  정부   발표 \n\t 내용  ", "정부 발표 내용"},
		{"tag replaced by space keeps word boundary", "금리<br>인상", "금리 인상"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
