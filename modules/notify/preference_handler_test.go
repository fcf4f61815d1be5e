package notify_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipfwd/notifyd/pkg/notification"
	"github.com/shipfwd/notifyd/pkg/preference"
)

func TestPreferenceAPI_GetOrCreate(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/preferences/user/u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	p := decodeBody[preference.Preference](t, resp)
	assert.Equal(t, "u1", p.UserID)
	assert.False(t, p.DoNotDisturb.Enabled)
	assert.Equal(t,
		[]notification.Channel{notification.ChannelInApp},
		p.Preferences[notification.TypeWarehouseUpdate])

	// Second fetch returns the same record, not a new one.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/preferences/user/u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	again := decodeBody[preference.Preference](t, resp)
	assert.Equal(t, p.ID, again.ID)
}

func TestPreferenceAPI_CreateConflict(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	body := map[string]any{
		"userId": "u1",
		"preferences": map[string][]string{
			"parcel_update": {"email"},
		},
	}

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/preferences", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/preferences", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestPreferenceAPI_SetCategory(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPatch, srv.URL+"/api/preferences/user/u1/type/parcel_update",
		map[string]any{"channels": []string{"sms"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	p := decodeBody[preference.Preference](t, resp)
	assert.Equal(t,
		[]notification.Channel{notification.ChannelSMS},
		p.Preferences[notification.TypeParcelUpdate])

	t.Run("invalid channel rejected", func(t *testing.T) {
		resp := doJSON(t, http.MethodPatch, srv.URL+"/api/preferences/user/u1/type/parcel_update",
			map[string]any{"channels": []string{"carrier_pigeon"}})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestPreferenceAPI_DoNotDisturb(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/preferences/user/u1/dnd/enable",
		map[string]any{"startTime": "22:00", "endTime": "07:00"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	p := decodeBody[preference.Preference](t, resp)
	assert.True(t, p.DoNotDisturb.Enabled)
	assert.Equal(t, "22:00", p.DoNotDisturb.From)

	t.Run("status", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, srv.URL+"/api/preferences/user/u1/dnd/status", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[map[string]bool](t, resp)
		_, present := body["isInDoNotDisturbPeriod"]
		assert.True(t, present)
	})

	t.Run("disable keeps bounds", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/preferences/user/u1/dnd/disable", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		p := decodeBody[preference.Preference](t, resp)
		assert.False(t, p.DoNotDisturb.Enabled)
		assert.Equal(t, "22:00", p.DoNotDisturb.From)
	})

	t.Run("malformed bounds rejected", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/preferences/user/u1/dnd/enable",
			map[string]any{"startTime": "10pm", "endTime": "07:00"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestPreferenceAPI_ResetAndDelete(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	_ = doJSON(t, http.MethodPatch, srv.URL+"/api/preferences/user/u1/type/parcel_update",
		map[string]any{"channels": []string{"sms"}})

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/preferences/user/u1/reset", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	p := decodeBody[preference.Preference](t, resp)
	assert.Equal(t,
		[]notification.Channel{notification.ChannelEmail, notification.ChannelInApp},
		p.Preferences[notification.TypeParcelUpdate])

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/preferences/user/u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "preference deleted", body["message"])

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/preferences/user/u1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPreferenceAPI_Channels(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	t.Run("defaults for a user without a record", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, srv.URL+"/api/preferences/user/u1/type/warehouse_update/channels", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[map[string][]notification.Channel](t, resp)
		assert.Equal(t, []notification.Channel{notification.ChannelInApp}, body["channels"])
	})

	t.Run("resolved from a stored record", func(t *testing.T) {
		_ = doJSON(t, http.MethodPatch, srv.URL+"/api/preferences/user/u2/type/warehouse_update",
			map[string]any{"channels": []string{"push"}})

		resp := doJSON(t, http.MethodGet, srv.URL+"/api/preferences/user/u2/type/warehouse_update/channels", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[map[string][]notification.Channel](t, resp)
		assert.Equal(t, []notification.Channel{notification.ChannelPush}, body["channels"])
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, srv.URL+"/api/preferences/user/u1/type/bogus/channels", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestPreferenceAPI_List(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	_ = doJSON(t, http.MethodGet, srv.URL+"/api/preferences/user/u1", nil)
	_ = doJSON(t, http.MethodGet, srv.URL+"/api/preferences/user/u2", nil)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/preferences", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeBody[[]preference.Preference](t, resp)
	assert.Len(t, list, 2)
}
