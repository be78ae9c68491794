package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		request Request
		wantErr bool
	}{
		{
			name:    "minimal valid request",
			request: Request{Types: []ContentType{TypeAdCopy}},
			wantErr: false,
		},
		{
			name: "full valid request",
			request: Request{
				Types:        []ContentType{TypeAdCopy, TypeEmailCreative},
				Platforms:    []string{"facebook", "google"},
				VariantCount: 5,
				Campaign:     "spring launch",
				Audience:     "gardeners",
			},
			wantErr: false,
		},
		{
			name:    "missing types",
			request: Request{},
			wantErr: true,
		},
		{
			name:    "unknown type member",
			request: Request{Types: []ContentType{"billboards"}},
			wantErr: true,
		},
		{
			name: "unknown platform",
			request: Request{
				Types:     []ContentType{TypeAdCopy},
				Platforms: []string{"myspace"},
			},
			wantErr: true,
		},
		{
			name: "variant count out of range",
			request: Request{
				Types:        []ContentType{TypeAdCopy},
				VariantCount: 99,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequestNormalize(t *testing.T) {
	req := Request{Types: []ContentType{TypeAdCopy}}
	req.Normalize()

	assert.Equal(t, DefaultVariantCount, req.VariantCount)
	assert.Equal(t, DefaultPlatforms, req.Platforms)

	custom := Request{
		Types:        []ContentType{TypeAdCopy},
		Platforms:    []string{"linkedin"},
		VariantCount: 1,
	}
	custom.Normalize()
	assert.Equal(t, []string{"linkedin"}, custom.Platforms, "set fields are kept")
	assert.Equal(t, 1, custom.VariantCount)
}

func TestRequestManifest(t *testing.T) {
	req := Request{Types: []ContentType{TypeAdCopy, TypeUgcScripts}}
	m := req.Manifest()

	assert.True(t, m.Contains(TypeAdCopy))
	assert.True(t, m.Contains(TypeUgcScripts))
	assert.False(t, m.Contains(TypeEmailCreative))
}
