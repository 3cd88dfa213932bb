package markdown

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/emrgen/papernote/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/ok.md":
			_, _ = w.Write([]byte("# hello"))
		case "/blank.md":
			_, _ = w.Write([]byte("  \n"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	l := NewLoader(srv.Client(), 1)
	ctx := context.Background()

	md, err := l.Load(ctx, srv.URL+"/ok.md")
	require.NoError(t, err)
	assert.Equal(t, "# hello", md)

	tests := []struct {
		name    string
		url     string
		message string
		status  int
	}{
		{name: "missing url", url: "", message: MsgMissingURL},
		{name: "empty content", url: srv.URL + "/blank.md", message: MsgEmptyContent},
		{name: "not found", url: srv.URL + "/missing.md", message: MsgLoadFailed, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls.Store(0)
			_, err := l.Load(ctx, tt.url)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, tt.message, loadErr.Message)
			assert.Equal(t, tt.status, loadErr.Status)
			assert.LessOrEqual(t, calls.Load(), int32(1), "client errors are not retried")
		})
	}
}

func TestImporter_Import(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# Paper\n\nabstract ![fig](http://x/fig.png)\n\n- point\n"))
	}))
	defer srv.Close()

	imp := NewImporter(NewLoader(srv.Client(), 0), NewGoldmarkDeserializer(false))
	res, err := imp.Import(context.Background(), srv.URL+"/paper.md")
	require.NoError(t, err)

	assert.Equal(t, 1, res.Restored)
	require.Len(t, res.Images, 1)
	assert.Equal(t, "fig", res.Images[0].Alt)
	assert.True(t, HasImage(res.Value))
	assert.Contains(t, imageURLs(res.Value), "http://x/fig.png")
}

func TestSerialize(t *testing.T) {
	todo := document.NewBlock(document.TypeTodoList, document.Text("done"))
	todo.SetProp("checked", "true")
	code := document.NewBlock(document.TypeCode, document.Text("x := 1"))
	code.SetProp("language", "go")

	v := document.FromBlocks(
		document.NewBlock(document.TypeHeadingOne, document.Text("Title")),
		document.NewBlock(document.TypeParagraph, document.Text("plain "), document.Text("bold", document.MarkBold), document.Link(" link", "http://x")),
		document.NewBlock(document.TypeNumberedList, document.Text("one")),
		document.NewBlock(document.TypeNumberedList, document.Text("two")),
		todo,
		code,
		document.NewImage("http://x/1.png", "a"),
		document.NewBlock(document.TypeDivider),
	)

	out := Serialize(v)
	for _, want := range []string{
		"# Title\n",
		"plain **bold**[ link](http://x)\n",
		"1. one\n",
		"2. two\n",
		"- [x] done\n",
		"```go\nx := 1\n```\n",
		"![a](http://x/1.png)\n",
		"---\n",
	} {
		assert.True(t, strings.Contains(out, want), "missing %q in\n%s", want, out)
	}

	back := convert(t, out)
	assert.True(t, HasImage(convertKeep(t, out)))
	assert.Equal(t, document.TypeHeadingOne, back.Blocks()[0].Type)
}

func convertKeep(t *testing.T, md string) document.Value {
	t.Helper()
	v, err := NewGoldmarkDeserializer(true).Deserialize(md)
	require.NoError(t, err)
	return v
}
