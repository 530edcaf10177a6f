package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listing struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func TestGet_RoundTripsStoredJSON(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)
	ctx := context.Background()

	mock.ExpectGet("listings:events").SetVal(`{"id":"ev-1","title":"Kathak Evening"}`)

	var got listing
	require.NoError(t, svc.Get(ctx, "listings:events", &got))
	assert.Equal(t, "ev-1", got.ID)
	assert.Equal(t, "Kathak Evening", got.Title)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_MissingKeyIsCacheMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	mock.ExpectGet("listings:classes").RedisNil()

	var got listing
	err := svc.Get(context.Background(), "listings:classes", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_CorruptEntryIsAnError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	mock.ExpectGet("listings:events").SetVal(`{not json`)

	var got listing
	err := svc.Get(context.Background(), "listings:events", &got)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_MarshalsValueWithTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	mock.ExpectSet("listings:events", []byte(`{"id":"ev-1","title":"Kathak Evening"}`), 5*time.Minute).
		SetVal("OK")

	err := svc.Set(context.Background(), "listings:events",
		listing{ID: "ev-1", Title: "Kathak Evening"}, 5*time.Minute)
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NoKeysIsANoOp(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	// No DEL expectation registered: issuing one would fail the test.
	require.NoError(t, svc.Delete(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_RemovesAllGivenKeys(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	mock.ExpectDel("listings:events", "listings:classes").SetVal(2)

	require.NoError(t, svc.Delete(context.Background(), "listings:events", "listings:classes"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePattern_ScansThenDeletes(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	mock.ExpectScan(0, "listings:*", 100).SetVal([]string{"listings:events", "listings:classes"}, 0)
	mock.ExpectDel("listings:events", "listings:classes").SetVal(2)

	require.NoError(t, svc.DeletePattern(context.Background(), "listings:*"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePattern_NoMatchesSkipsDelete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	mock.ExpectScan(0, "listings:*", 100).SetVal([]string{}, 0)

	require.NoError(t, svc.DeletePattern(context.Background(), "listings:*"))
	require.NoError(t, mock.ExpectationsWereMet())
}
