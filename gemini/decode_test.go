package gemini

import (
	"testing"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "no fences",
			input:    `[0, 1]`,
			expected: `[0, 1]`,
		},
		{
			name:     "fence with language tag",
			input:    "```json\n[0, 1]\n```",
			expected: `[0, 1]`,
		},
		{
			name:     "fence without language tag",
			input:    "```\n{\"0\": {}}\n```",
			expected: `{"0": {}}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n```json\n[]\n```  ",
			expected: `[]`,
		},
		{
			name:     "payload on fence line",
			input:    "```[1]```",
			expected: `[1]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.input); got != tt.expected {
				t.Errorf("StripCodeFences(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDecodeIndexList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		bound    int
		expected []int
		wantErr  bool
	}{
		{
			name:     "plain list",
			input:    "[0, 2, 4]",
			bound:    5,
			expected: []int{0, 2, 4},
		},
		{
			name:     "empty list",
			input:    "[]",
			bound:    3,
			expected: []int{},
		},
		{
			name:     "list embedded in prose",
			input:    "The relevant entries are [1, 2] as discussed.",
			bound:    3,
			expected: []int{1, 2},
		},
		{
			name:     "fenced list",
			input:    "```json\n[0]\n```",
			bound:    1,
			expected: []int{0},
		},
		{
			name:    "no list at all",
			input:   "I could not determine relevance.",
			bound:   3,
			wantErr: true,
		},
		{
			name:    "index out of bounds",
			input:   "[0, 9]",
			bound:   3,
			wantErr: true,
		},
		{
			name:    "negative bound rejects everything",
			input:   "[0]",
			bound:   0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeIndexList(tt.input, tt.bound)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %v, got %v", tt.expected, got)
			}
			for i, idx := range tt.expected {
				if got[i] != idx {
					t.Errorf("Index %d: expected %d, got %d", i, idx, got[i])
				}
			}
		})
	}
}

func TestDecodeIndexedObject(t *testing.T) {
	t.Run("valid keyed object", func(t *testing.T) {
		input := `{"0": {"severity": "SEVERE", "items": ["a"]}, "1": {"severity": "LOW", "items": ["b", "c"]}}`

		revisions, err := DecodeIndexedObject(input, 2)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if len(revisions) != 2 {
			t.Fatalf("Expected 2 revisions, got %d", len(revisions))
		}
		if revisions[0].Severity != "SEVERE" || len(revisions[0].Items) != 1 {
			t.Errorf("Unexpected revision 0: %+v", revisions[0])
		}
		if revisions[1].Severity != "LOW" || len(revisions[1].Items) != 2 {
			t.Errorf("Unexpected revision 1: %+v", revisions[1])
		}
	})

	t.Run("object wrapped in prose and fences", func(t *testing.T) {
		input := "Here is the result:\n```json\n{\"0\": {\"severity\": \"LOW\", \"items\": [\"x\"]}}\n```"

		revisions, err := DecodeIndexedObject(input, 1)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if revisions[0].Items[0] != "x" {
			t.Errorf("Unexpected revision: %+v", revisions[0])
		}
	})

	t.Run("out of bounds and junk keys dropped", func(t *testing.T) {
		input := `{"0": {"severity": "LOW", "items": ["x"]}, "9": {"severity": "LOW", "items": ["y"]}, "abc": {"severity": "LOW", "items": ["z"]}}`

		revisions, err := DecodeIndexedObject(input, 2)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(revisions) != 1 {
			t.Errorf("Expected only valid key kept, got %v", revisions)
		}
	})

	t.Run("no object", func(t *testing.T) {
		if _, err := DecodeIndexedObject("nothing structured here", 2); err == nil {
			t.Error("Expected error for response without object")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		if _, err := DecodeIndexedObject(`{"0": {"severity": }`, 2); err == nil {
			t.Error("Expected error for malformed object")
		}
	})
}
