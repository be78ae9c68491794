package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/brandsmith/internal/content"
	"github.com/marcus/brandsmith/internal/extraction"
)

func testProfile() *extraction.BrandProfile {
	return &extraction.BrandProfile{
		Name:              "Acme Corp",
		Description:       "dedicated to quality",
		Products:          []string{"Widgets", "Gadgets"},
		ValuePropositions: []string{"quality"},
		Keywords:          []string{"widgets", "gadgets", "quality"},
		Tone:              extraction.ToneFriendly,
	}
}

func TestRunnerExecutesInRegistrationOrder(t *testing.T) {
	var order []string
	record := func(name string) func(context.Context, *State) error {
		return func(context.Context, *State) error {
			order = append(order, name)
			return nil
		}
	}

	r := NewRegistry()
	require.NoError(t, r.Register(Step{Name: "one", Action: record("one")}))
	require.NoError(t, r.Register(Step{Name: "two", Action: record("two")}))
	require.NoError(t, r.Register(Step{Name: "three", Action: record("three")}))

	runner := NewRunner(r)
	assert.Equal(t, StatusNotStarted, runner.Status())

	state, err := runner.Run(context.Background(), testProfile(), content.Manifest{})
	require.NoError(t, err)
	require.NotNil(t, state)

	assert.Equal(t, []string{"one", "two", "three"}, order)
	assert.Equal(t, StatusCompleted, runner.Status())
	assert.Empty(t, state.Errors)
	assert.NotEqual(t, "", state.RunID.String())
	assert.False(t, state.Timestamp.IsZero())
}

func TestRunnerSkipsWhenPredicateFalse(t *testing.T) {
	ran := false
	r := NewRegistry()
	require.NoError(t, r.Register(Step{
		Name:        "ads",
		ContentType: content.TypeAdCopy,
		Predicate:   func(*State) bool { return false },
		Action: func(context.Context, *State) error {
			ran = true
			return nil
		},
	}))

	var events []ProgressEvent
	runner := NewRunner(r)
	runner.OnProgress = func(e ProgressEvent) { events = append(events, e) }

	state, err := runner.Run(context.Background(), testProfile(), content.Manifest{})
	require.NoError(t, err)

	assert.False(t, ran, "skipped step must not execute")
	assert.Empty(t, state.Errors, "a skip is not a failure")
	require.Len(t, events, 1)
	assert.Equal(t, StepSkipped, events[0].Status)
}

func TestRunnerRecordsFailureAndContinues(t *testing.T) {
	boom := errors.New("generator unavailable")
	reached := false

	r := NewRegistry()
	require.NoError(t, r.Register(Step{Name: "fails", Action: func(context.Context, *State) error { return boom }}))
	require.NoError(t, r.Register(Step{Name: "still_runs", Action: func(context.Context, *State) error {
		reached = true
		return nil
	}}))

	runner := NewRunner(r)
	state, err := runner.Run(context.Background(), testProfile(), content.Manifest{})
	require.NoError(t, err, "step failures must not abort the run")

	assert.True(t, reached, "later steps run after a failure")
	require.Len(t, state.Errors, 1)
	assert.Equal(t, "fails", state.Errors[0].Step)
	assert.Equal(t, "generator unavailable", state.Errors[0].Message)
}

func TestRunnerRecoversPanickingStep(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Step{Name: "panics", Action: func(context.Context, *State) error {
		panic("nil dereference in generator")
	}}))
	require.NoError(t, r.Register(Step{Name: "after", Action: noopAction}))

	runner := NewRunner(r)
	state, err := runner.Run(context.Background(), testProfile(), content.Manifest{})
	require.NoError(t, err)

	require.Len(t, state.Errors, 1)
	assert.Equal(t, "panics", state.Errors[0].Step)
	assert.Contains(t, state.Errors[0].Message, "panicked")
}

func TestRunnerRejectsInvalidSetup(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Step{
		Name:        "ads",
		ContentType: content.TypeAdCopy,
		DependsOn:   []string{"missing"},
		Action:      noopAction,
	}))

	runner := NewRunner(r)
	state, err := runner.Run(context.Background(), testProfile(), content.NewManifest(content.TypeAdCopy))

	require.Error(t, err)
	assert.Nil(t, state, "no state when setup validation fails")
	assert.Equal(t, StatusNotStarted, runner.Status())

	var depErr *DependencyError
	assert.ErrorAs(t, err, &depErr)
}

func TestRunnerRequiresSteps(t *testing.T) {
	runner := NewRunner(NewRegistry())
	state, err := runner.Run(context.Background(), testProfile(), content.Manifest{})
	require.Error(t, err)
	assert.Nil(t, state)
}

func TestRunnerProgressEvents(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Step{Name: "one", Action: noopAction}))
	require.NoError(t, r.Register(Step{Name: "two", Action: func(context.Context, *State) error {
		return errors.New("boom")
	}}))

	var events []ProgressEvent
	runner := NewRunner(r)
	runner.OnProgress = func(e ProgressEvent) { events = append(events, e) }

	_, err := runner.Run(context.Background(), testProfile(), content.Manifest{})
	require.NoError(t, err)

	require.Len(t, events, 4)
	assert.Equal(t, StepRunning, events[0].Status)
	assert.Equal(t, StepCompleted, events[1].Status)
	assert.Equal(t, StepRunning, events[2].Status)
	assert.Equal(t, StepFailed, events[3].Status)
	assert.Equal(t, "boom", events[3].Message)
	assert.Equal(t, 2, events[2].Index)
	assert.Equal(t, 2, events[2].Total)
	assert.Equal(t, "one", events[0].Step)
}
