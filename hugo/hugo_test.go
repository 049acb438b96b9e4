package hugo_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docsmith/hugo"
	"github.com/fwojciec/docsmith/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	dir  string
	name string
	args []string
}

func recordingRunner(calls *[]call) *mock.Runner {
	return &mock.Runner{
		RunFn: func(_ context.Context, dir, name string, args ...string) error {
			*calls = append(*calls, call{dir: dir, name: name, args: args})
			return nil
		},
	}
}

func TestSite_NewSite(t *testing.T) {
	t.Parallel()

	var calls []call
	site := hugo.NewSite(recordingRunner(&calls), "/work/site")

	err := site.NewSite(context.Background())

	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, call{dir: "/work/site", name: "hugo", args: []string{"new", "site", ".", "--force"}}, calls[0])
}

func TestSite_Build(t *testing.T) {
	t.Parallel()

	t.Run("passes destination and extra args", func(t *testing.T) {
		t.Parallel()

		var calls []call
		site := hugo.NewSite(recordingRunner(&calls), "/work/site")

		err := site.Build(context.Background(), []string{"--minify"})

		require.NoError(t, err)
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"--destination", "public", "--minify"}, calls[0].args)
	})

	t.Run("passes theme when set", func(t *testing.T) {
		t.Parallel()

		var calls []call
		site := hugo.NewSite(recordingRunner(&calls), "/work/site")
		site.Bin = "/opt/hugo"
		site.Theme = "docsy"

		err := site.Build(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "/opt/hugo", calls[0].name)
		assert.Equal(t, []string{"--destination", "public", "--theme", "docsy"}, calls[0].args)
	})
}

func TestSite_Serve(t *testing.T) {
	t.Parallel()

	var calls []call
	site := hugo.NewSite(recordingRunner(&calls), "/work/site")
	site.Theme = "docsy"

	err := site.Serve(context.Background(), []string{"--port", "1314"})

	require.NoError(t, err)
	assert.Equal(t, []string{"server", "--theme", "docsy", "--port", "1314"}, calls[0].args)
}
