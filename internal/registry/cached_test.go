package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerkit/companion/internal/prompt"
)

type fakeInner struct {
	loadCalls int
	tpl       *prompt.Template
	err       error

	promoted []string
	infos    []Info
}

func (f *fakeInner) Load(_ context.Context, name, alias string) (*prompt.Template, error) {
	f.loadCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.tpl, nil
}

func (f *fakeInner) Register(_ context.Context, name, body, _ string) (*prompt.Template, error) {
	return &prompt.Template{Name: name, Version: 1, Body: body}, nil
}

func (f *fakeInner) Promote(_ context.Context, name string, version int, alias string) error {
	f.promoted = append(f.promoted, name)
	return f.err
}

func (f *fakeInner) List(_ context.Context) ([]Info, error) {
	return f.infos, f.err
}

func TestCachedLoadWithoutRedisHitsInner(t *testing.T) {
	inner := &fakeInner{tpl: &prompt.Template{Name: "skill_gap_analysis", Version: 2, Body: "body"}}
	c := NewCached(inner, nil, time.Minute)

	tpl, err := c.Load(context.Background(), "skill_gap_analysis", "production")
	require.NoError(t, err)
	assert.Equal(t, 2, tpl.Version)
	assert.Equal(t, 1, inner.loadCalls)

	// Without redis every load goes to the inner store.
	_, err = c.Load(context.Background(), "skill_gap_analysis", "production")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.loadCalls)
}

func TestCachedLoadPropagatesInnerError(t *testing.T) {
	inner := &fakeInner{err: prompt.ErrNotFound}
	c := NewCached(inner, nil, time.Minute)

	_, err := c.Load(context.Background(), "missing", "production")
	assert.ErrorIs(t, err, prompt.ErrNotFound)
}

func TestCachedPromotePassesThrough(t *testing.T) {
	inner := &fakeInner{}
	c := NewCached(inner, nil, time.Minute)

	require.NoError(t, c.Promote(context.Background(), "skill_gap_analysis", 3, "production"))
	assert.Equal(t, []string{"skill_gap_analysis"}, inner.promoted)
}

func TestCachedListDelegates(t *testing.T) {
	inner := &fakeInner{infos: []Info{
		{Name: "skill_gap_analysis", LatestVersion: 2},
		{Name: "mentor_simulation", LatestVersion: 1},
	}}
	c := NewCached(inner, nil, time.Minute)

	infos, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, inner.infos, infos)
}
