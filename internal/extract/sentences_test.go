package extract

import "testing"

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "terminators",
			text: "Why now? Because demand doubled! Okay then.",
			want: []string{"Why now?", "Because demand doubled!", "Okay then."},
		},
		{
			name: "abbreviations",
			text: "Smith et al. found gains. Programs e.g. tutoring help students.",
			want: []string{"Smith et al. found gains.", "Programs e.g. tutoring help students."},
		},
		{
			name: "parenthetical",
			text: "Results held (Jones, 2020, p. 4). Done here now.",
			want: []string{"Results held (Jones, 2020, p. 4).", "Done here now."},
		},
		{
			name: "decimals",
			text: "The rate was 3.5 percent. It fell later.",
			want: []string{"The rate was 3.5 percent.", "It fell later."},
		},
		{
			name: "unclosed parenthesis",
			text: "We served 5,000 families (mostly in the north. Our clinic cut wait times by 40% [1]. Enrollment rose 18% last year.",
			want: []string{
				"We served 5,000 families (mostly in the north.",
				"Our clinic cut wait times by 40% [1].",
				"Enrollment rose 18% last year.",
			},
		},
		{
			name: "unclosed bracket",
			text: "See table [2 for totals. Costs fell by half.",
			want: []string{"See table [2 for totals.", "Costs fell by half."},
		},
		{
			name: "initials",
			text: "A study by Dr. J. Smith found gains. Mary K. Jones agreed.",
			want: []string{"A study by Dr. J. Smith found gains.", "Mary K. Jones agreed."},
		},
		{
			name: "capital letter ending a sentence",
			text: "We chose option B. The program served 5,000 people.",
			want: []string{"We chose option B.", "The program served 5,000 people."},
		},
		{
			name: "initial at text start",
			text: "J. Smith led the evaluation.",
			want: []string{"J. Smith led the evaluation."},
		},
		{
			name: "no terminator",
			text: "  A trailing fragment without punctuation  ",
			want: []string{"A trailing fragment without punctuation"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text, 1)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d sentences, got %d: %+v", len(tt.want), len(got), got)
			}
			for i, s := range got {
				if s.Text != tt.want[i] {
					t.Errorf("Sentence %d: expected %q, got %q", i, tt.want[i], s.Text)
				}
				if tt.text[s.Start:s.End] != s.Text {
					t.Errorf("Sentence %d: span [%d,%d) does not match text", i, s.Start, s.End)
				}
			}
		})
	}
}

func TestSplitSentences_MinLength(t *testing.T) {
	got := SplitSentences("Hi. This sentence is long enough.", DefaultMinSentenceLength)
	if len(got) != 1 {
		t.Fatalf("Expected 1 sentence, got %d", len(got))
	}
}

func TestClaimExtractor_UnclosedParenthesis(t *testing.T) {
	text := "We served 5,000 families (mostly in the north. Our clinic cut wait times by 40% [1]. Enrollment rose 18% last year."
	claims := NewClaimExtractor(0).Extract(text, 0)

	if len(claims) != 3 {
		t.Fatalf("Expected 3 claims, got %d: %+v", len(claims), claims)
	}
	for i, c := range claims {
		if !c.NeedsCitation {
			t.Errorf("Claim %d (%q): expected to need a citation", i, c.Text)
		}
	}
}
