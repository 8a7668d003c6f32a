package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

type fakeDigester struct {
	digest string
	err    error
	calls  int
}

func (f *fakeDigester) Digest(ctx context.Context, text string, maxSentences int) (string, error) {
	f.calls++
	return f.digest, f.err
}

const longArticle = `The city council voted on Tuesday to approve a new transit plan for the downtown corridor. ` +
	`The plan adds three bus rapid transit lines and extends service hours until midnight on weekdays. ` +
	`Officials said the project will cost an estimated 45 million dollars over five years. ` +
	`Local business owners expressed concern about construction disrupting foot traffic during the holiday season. ` +
	`The transportation department promised to stage the work in phases to limit closures. ` +
	`Advocates for the plan pointed to rising ridership numbers across the existing network. ` +
	`A final environmental review is expected to conclude by the end of March. ` +
	`Construction on the first line could begin as early as next summer if funding is approved.`

func TestSummarize_EmptyInput(t *testing.T) {
	s := New(nil)
	assert.Equal(t, "", s.Summarize(context.Background(), "", 3))
	assert.Equal(t, "", s.Summarize(context.Background(), "   ", 3))
}

func TestSummarize_ShortInputReturnedWhole(t *testing.T) {
	s := New(nil)
	got := s.Summarize(context.Background(), "A short update on the weather.", 3)
	assert.Equal(t, "A short update on the weather.", got)
}

func TestSummarize_Deterministic(t *testing.T) {
	s := New(nil)
	first := s.Summarize(context.Background(), longArticle, 3)
	second := s.Summarize(context.Background(), longArticle, 3)

	assert.Equal(t, first, second)
	assert.NotEqual(t, "", first)
}

func TestSummarize_ShorterThanInput(t *testing.T) {
	s := New(nil)
	got := s.Summarize(context.Background(), longArticle, 2)

	assert.Equal(t, true, len(got) > 0)
	assert.Equal(t, true, len(got) < len(longArticle))
}

func TestSummarize_StripsURLs(t *testing.T) {
	s := New(nil)
	got := s.Summarize(context.Background(), "Read the update at https://example.com/x today.", 3)
	assert.Equal(t, false, strings.Contains(got, "example.com"))
}

func TestSummarize_AbstractiveFallbackErrorKeepsExtractive(t *testing.T) {
	d := &fakeDigester{err: errors.New("model down")}
	s := New(d)

	got := s.Summarize(context.Background(), longArticle, 3)
	assert.NotEqual(t, "", got)
}

func TestCleanSummaryText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "removes ranking numbers",
			input: "No. 6 Stocks rallied on Friday.",
			want:  "Stocks rallied on Friday.",
		},
		{
			name:  "capitalizes first letter",
			input: "stocks rallied on Friday.",
			want:  "Stocks rallied on Friday.",
		},
		{
			name:  "removes article-colon prefix",
			input: "The: markets closed higher.",
			want:  "Markets closed higher.",
		},
		{
			name:  "collapses whitespace",
			input: "Markets  closed \t higher.",
			want:  "Markets closed higher.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanSummaryText(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFirstSentences(t *testing.T) {
	got := firstSentences("One. Two. Three. Four.", 2)
	assert.Equal(t, "One. Two.", got)
}
