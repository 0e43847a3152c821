package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runLines feeds each request line to a fresh server and returns the
// decoded responses in order.
func runLines(t *testing.T, b Backend, lines ...string) []response {
	t.Helper()
	s := NewServer(b, "test", nil)
	var out bytes.Buffer
	err := s.Run(context.Background(), strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	require.NoError(t, err)

	var resps []response
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var r response
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r), sc.Text())
		resps = append(resps, r)
	}
	return resps
}

func TestRun_Initialize(t *testing.T) {
	resps := runLines(t, &fakeBackend{}, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)
	require.Len(t, resps, 1)
	require.Nil(t, resps[0].Error)

	result := resps[0].Result.(map[string]any)
	assert.Equal(t, protocolVersion, result["protocolVersion"])
	info := result["serverInfo"].(map[string]any)
	assert.Equal(t, "sentimeter", info["name"])
	assert.Equal(t, "test", info["version"])
}

func TestRun_ToolsList(t *testing.T) {
	resps := runLines(t, &fakeBackend{}, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	require.Len(t, resps, 1)

	tools := resps[0].Result.(map[string]any)["tools"].([]any)
	var names []string
	for _, tool := range tools {
		m := tool.(map[string]any)
		names = append(names, m["name"].(string))
		assert.NotEmpty(t, m["inputSchema"])
	}
	assert.Equal(t, []string{"list_products", "get_product_analytics", "list_feedback", "score_feedback"}, names)
}

func TestRun_NotificationGetsNoResponse(t *testing.T) {
	resps := runLines(t, &fakeBackend{},
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
	)
	require.Len(t, resps, 1)
	assert.Equal(t, "2", string(*resps[0].ID))
}

func TestRun_Errors(t *testing.T) {
	resps := runLines(t, &fakeBackend{},
		`not json`,
		`{"jsonrpc":"2.0","id":1,"method":"resources/list"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":"bad"}`,
	)
	require.Len(t, resps, 3)
	assert.Equal(t, codeParseError, resps[0].Error.Code)
	assert.Equal(t, codeMethodNotFound, resps[1].Error.Code)
	assert.Equal(t, codeInvalidParams, resps[2].Error.Code)
}

func TestRun_UnknownToolIsToolError(t *testing.T) {
	resps := runLines(t, &fakeBackend{},
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"nope"}}`)
	require.Len(t, resps, 1)
	require.Nil(t, resps[0].Error)

	result := resps[0].Result.(map[string]any)
	assert.Equal(t, true, result["isError"])
	content := result["content"].([]any)[0].(map[string]any)
	assert.Contains(t, content["text"], "unknown tool")
}

func TestRun_CancelledContextReturns(t *testing.T) {
	s := NewServer(&fakeBackend{}, "test", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr, pw := newBlockingReader()
	defer pw.Close()
	assert.NoError(t, s.Run(ctx, pr, &bytes.Buffer{}))
}
