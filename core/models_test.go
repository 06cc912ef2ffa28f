package core

import "testing"

func TestIDFromContentDeterministic(t *testing.T) {
	a := IDFromContent("acme.co.kr")
	b := IDFromContent("acme.co.kr")
	if a != b {
		t.Fatalf("Expected identical ids for identical content, got %d and %d", a, b)
	}

	c := IDFromContent("other.co.kr")
	if a == c {
		t.Fatalf("Expected different ids for different content, both were %d", a)
	}
}

func TestSearchableText(t *testing.T) {
	record := &FAQRecord{
		Question: "연차는 언제부터 쓸 수 있나요?",
		Answer:   "입사일로부터 1개월 개근 시 1일의 유급휴가가 발생합니다.",
	}

	text := record.SearchableText()
	expected := "Q: 연차는 언제부터 쓸 수 있나요?\nA: 입사일로부터 1개월 개근 시 1일의 유급휴가가 발생합니다."
	if text != expected {
		t.Fatalf("Expected %q, got %q", expected, text)
	}
}
