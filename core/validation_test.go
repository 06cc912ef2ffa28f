package core

import (
	"errors"
	"testing"
)

func TestValidateFAQRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *FAQRecord
		wantErr error
	}{
		{
			name:   "valid record",
			record: &FAQRecord{Question: "휴가 규정은?", Answer: "제7조를 따릅니다."},
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidFAQRecord,
		},
		{
			name:    "empty question",
			record:  &FAQRecord{Answer: "답변"},
			wantErr: ErrEmptyQuestion,
		},
		{
			name:    "empty answer",
			record:  &FAQRecord{Question: "질문?"},
			wantErr: ErrEmptyAnswer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFAQRecord(tt.record)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateExtractedItem(t *testing.T) {
	tests := []struct {
		name    string
		item    *ExtractedItem
		wantErr error
	}{
		{
			name: "valid item",
			item: &ExtractedItem{Question: "질문?", Answer: "답변", Confidence: 0.8},
		},
		{
			name:    "confidence above one",
			item:    &ExtractedItem{Question: "질문?", Answer: "답변", Confidence: 1.2},
			wantErr: ErrInvalidConfidence,
		},
		{
			name:    "negative confidence",
			item:    &ExtractedItem{Question: "질문?", Answer: "답변", Confidence: -0.1},
			wantErr: ErrInvalidConfidence,
		},
		{
			name:    "empty question",
			item:    &ExtractedItem{Answer: "답변", Confidence: 0.5},
			wantErr: ErrEmptyQuestion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExtractedItem(tt.item)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateTenant(t *testing.T) {
	if err := ValidateTenant(&Tenant{Domain: "acme.co.kr"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := ValidateTenant(&Tenant{}); !errors.Is(err, ErrEmptyTenantDomain) {
		t.Fatalf("Expected ErrEmptyTenantDomain, got %v", err)
	}
	if err := ValidateTenant(nil); !errors.Is(err, ErrInvalidTenant) {
		t.Fatalf("Expected ErrInvalidTenant, got %v", err)
	}
}
