package backup

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestKeyFromURI(t *testing.T) {
	cases := []struct {
		uri     string
		want    string
		wantErr bool
	}{
		{uri: "s3://my-bucket/backups/warehouse.duckdb", want: "backups/warehouse.duckdb"},
		{uri: "gs://my-bucket/nested/path/file.csv", want: "nested/path/file.csv"},
		{uri: "azblob://myaccount/mycontainer/backups/db.duckdb", want: "backups/db.duckdb"},
		{uri: "s3://my-bucket/", wantErr: true},
		{uri: "azblob://myaccount/mycontainer", wantErr: true},
	}
	for _, tc := range cases {
		got, err := KeyFromURI(tc.uri)
		if tc.wantErr {
			assert.Error(t, err, tc.uri)
			continue
		}
		require.NoError(t, err, tc.uri)
		assert.Equal(t, tc.want, got, tc.uri)
	}
}

func TestSplitAzureHost(t *testing.T) {
	u := mustParseURL(t, "azblob://myaccount/mycontainer/some/key")
	account, container, err := splitAzureHost(u)
	require.NoError(t, err)
	assert.Equal(t, "myaccount", account)
	assert.Equal(t, "mycontainer", container)
}

func TestSplitAzureHost_MissingContainer(t *testing.T) {
	u := mustParseURL(t, "azblob://myaccount")
	_, _, err := splitAzureHost(u)
	assert.Error(t, err)
}

func TestForURI_UnsupportedScheme(t *testing.T) {
	_, err := ForURI(nil, "ftp://example.com/file")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backup scheme")
}
