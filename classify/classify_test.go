package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyword_NoLabels(t *testing.T) {
	_, err := Keyword{}.Classify(context.Background(), "anything", nil)
	require.ErrorIs(t, err, ErrNoLabels)
}

func TestKeyword_PicksBestMatch(t *testing.T) {
	labels := []string{
		"Run flows on a schedule with cron",
		"Retry failed tasks automatically",
		"Cache task results between runs",
	}

	tests := []struct {
		text string
		want string
	}{
		{text: "how do I retry a task that failed?", want: labels[1]},
		{text: "cron schedule for my flow", want: labels[0]},
		{text: "caching results", want: labels[2]},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := Keyword{}.Classify(context.Background(), tt.text, labels)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyword_TieGoesToFirst(t *testing.T) {
	got, err := Keyword{}.Classify(context.Background(), "zz", []string{"first", "second"})
	require.NoError(t, err)
	assert.Equal(t, "first", got)
}

func TestKeyword_AlwaysReturnsMember(t *testing.T) {
	labels := []string{"alpha", "beta"}
	got, err := Keyword{}.Classify(context.Background(), "completely unrelated words", labels)
	require.NoError(t, err)
	assert.Contains(t, labels, got)
}

func TestFunc(t *testing.T) {
	var c Classifier = Func(func(_ context.Context, text string, labels []string) (string, error) {
		return labels[len(labels)-1], nil
	})
	got, err := c.Classify(context.Background(), "x", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}
