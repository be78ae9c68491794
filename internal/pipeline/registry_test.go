package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/brandsmith/internal/content"
)

func noopAction(context.Context, *State) error { return nil }

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Step{Name: "first", Action: noopAction}))

	tests := []struct {
		name string
		step Step
		want string
	}{
		{
			name: "missing name",
			step: Step{Action: noopAction},
			want: "name is required",
		},
		{
			name: "missing action",
			step: Step{Name: "second"},
			want: "action is required",
		},
		{
			name: "duplicate name",
			step: Step{Name: "first", Action: noopAction},
			want: "already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Register(tt.step)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRegistryRejectsDuplicateContentType(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Step{Name: "ads_a", ContentType: content.TypeAdCopy, Action: noopAction}))

	err := r.Register(Step{Name: "ads_b", ContentType: content.TypeAdCopy, Action: noopAction})
	require.Error(t, err)

	var regErr *RegistrationError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, "ads_b", regErr.Step)
	assert.Contains(t, regErr.Reason, "already claimed")
}

func TestRegistryStepsReturnsCopy(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Step{Name: "only", Action: noopAction}))

	steps := r.Steps()
	steps[0].Name = "mutated"

	assert.Equal(t, "only", r.Steps()[0].Name, "callers must not be able to mutate the registry")
}

func TestRegistryValidate(t *testing.T) {
	tests := []struct {
		name     string
		steps    []Step
		manifest content.Manifest
		wantErr  func(error) bool
	}{
		{
			name: "valid chain",
			steps: []Step{
				{Name: "analyze", Action: noopAction},
				{Name: "ads", ContentType: content.TypeAdCopy, DependsOn: []string{"analyze"}, Action: noopAction},
			},
			manifest: content.NewManifest(content.TypeAdCopy),
		},
		{
			name: "unknown dependency",
			steps: []Step{
				{Name: "ads", ContentType: content.TypeAdCopy, DependsOn: []string{"missing"}, Action: noopAction},
			},
			manifest: content.NewManifest(content.TypeAdCopy),
			wantErr: func(err error) bool {
				var depErr *DependencyError
				return errors.As(err, &depErr) && depErr.Step == "ads"
			},
		},
		{
			name: "dependency registered after dependent",
			steps: []Step{
				{Name: "ads", ContentType: content.TypeAdCopy, DependsOn: []string{"analyze"}, Action: noopAction},
				{Name: "analyze", Action: noopAction},
			},
			manifest: content.NewManifest(content.TypeAdCopy),
			wantErr: func(err error) bool {
				var depErr *DependencyError
				return errors.As(err, &depErr)
			},
		},
		{
			name: "dependency cycle",
			steps: []Step{
				{Name: "a", DependsOn: []string{"b"}, Action: noopAction},
				{Name: "b", DependsOn: []string{"a"}, Action: noopAction},
			},
			manifest: content.Manifest{},
			wantErr: func(err error) bool {
				var cycErr *CycleError
				return errors.As(err, &cycErr)
			},
		},
		{
			name: "manifest names unclaimed type",
			steps: []Step{
				{Name: "ads", ContentType: content.TypeAdCopy, Action: noopAction},
			},
			manifest: content.NewManifest(content.TypeAdCopy, content.TypeUgcScripts),
			wantErr: func(err error) bool {
				var manErr *ManifestError
				return errors.As(err, &manErr) && manErr.ContentType == content.TypeUgcScripts
			},
		},
		{
			name: "empty manifest needs no content steps",
			steps: []Step{
				{Name: "package", Action: noopAction},
			},
			manifest: content.Manifest{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			for _, s := range tt.steps {
				require.NoError(t, r.Register(s))
			}
			err := r.Validate(tt.manifest)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, tt.wantErr(err), "unexpected error: %v", err)
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Contains(t, (&DependencyError{Step: "ads", Missing: []string{"analyze"}}).Error(), "missing dependencies")
	assert.Contains(t, (&CycleError{Path: []string{"a", "b", "a"}}).Error(), "a -> b -> a")
	assert.Contains(t, (&ManifestError{ContentType: content.TypeAdCopy}).Error(), "ad_copy")
	assert.Contains(t, (&RegistrationError{Step: "x", Reason: "name already registered"}).Error(), "x")
}
