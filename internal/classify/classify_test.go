package classify

import (
	"testing"
)

func TestClassify_Labels(t *testing.T) {
	c := New(Config{})

	tests := []struct {
		label string
		want  Kind
	}{
		// Front matter keywords.
		{"Titlepage", Front},
		{"Cover", Front},
		{"Copyright Notice", Front},
		{"Dedication", Front},
		{"Preface", Front},
		{"Foreword", Front},
		{"Introduction", Front},
		{"Prologue", Front},
		{"List of Illustrations", Front},
		// Back matter keywords.
		{"Acknowledgments", Back},
		{"Epilogue", Back},
		{"Afterword", Back},
		{"Endnotes", Back},
		{"About the Author", Back},
		{"Colophon", Back},
		// Keyword beats chapter pattern.
		{"Chapter Notes", Back},
		{"Chapter 20: Epilogue", Back},
		// Table of contents.
		{"Contents", Front},
		{"TOC", Front},
		// Chapter patterns.
		{"Chapter 1", Chapter},
		{"Chapter IX", Chapter},
		{"CH. 4", Chapter},
		{"Book Two", Chapter},
		{"Part III", Chapter},
		{"IX", Chapter},
		{"12", Chapter},
		{"The Year 1848", Chapter},
		// Unclassifiable.
		{"Interlude", Other},
		{"", Other},
	}

	for _, tt := range tests {
		name := tt.label
		if name == "" {
			name = "(empty)"
		}
		t.Run(name, func(t *testing.T) {
			if got := c.Classify(Facts{Label: tt.label}); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

func TestClassify_KeywordPrecedesPattern(t *testing.T) {
	c := New(Config{})

	// "Chapter Notes" matches both the back-matter keyword "notes" and the
	// chapter pattern "chapter"; the keyword rule runs first.
	if got := c.Classify(Facts{Label: "Chapter Notes"}); got != Back {
		t.Errorf("Classify(\"Chapter Notes\") = %v, want Back", got)
	}
	if got := c.Classify(Facts{Label: "Introduction to Part One"}); got != Front {
		t.Errorf("Classify(\"Introduction to Part One\") = %v, want Front", got)
	}
}

func TestClassify_ElementCountFallback(t *testing.T) {
	c := New(Config{})

	if got := c.Classify(Facts{Label: "", TextElements: 10}); got != Chapter {
		t.Errorf("unlabeled document with 10 elements = %v, want Chapter", got)
	}
	if got := c.Classify(Facts{Label: "", TextElements: 9}); got != Other {
		t.Errorf("unlabeled document with 9 elements = %v, want Other", got)
	}
	if got := c.Classify(Facts{Label: "Interlude", TextElements: 25}); got != Chapter {
		t.Errorf("long unmatched document = %v, want Chapter", got)
	}
}

func TestClassify_CustomConfig(t *testing.T) {
	c := New(Config{
		FrontKeywords:      []string{"vorwort"},
		BackKeywords:       []string{"nachwort"},
		MinChapterElements: 3,
	})

	if got := c.Classify(Facts{Label: "Vorwort"}); got != Front {
		t.Errorf("Classify(\"Vorwort\") = %v, want Front", got)
	}
	if got := c.Classify(Facts{Label: "Nachwort"}); got != Back {
		t.Errorf("Classify(\"Nachwort\") = %v, want Back", got)
	}
	if got := c.Classify(Facts{TextElements: 3}); got != Chapter {
		t.Errorf("3 elements with threshold 3 = %v, want Chapter", got)
	}
	// Unset fields keep their defaults.
	if got := c.Classify(Facts{Label: "Chapter 2"}); got != Chapter {
		t.Errorf("Classify(\"Chapter 2\") = %v, want Chapter", got)
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Front, "front"},
		{Chapter, "chapter"},
		{Back, "back"},
		{Other, "other"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
