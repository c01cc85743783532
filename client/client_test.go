package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/confadmin/internal/domain"
)

func TestGetAllSpeakers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/getallspeakers", r.URL.Path)
		assert.Equal(t, "confadmin-test", r.Header.Get("User-Agent"))
		io.WriteString(w, `[{"_id":"s1","nameLast":"Archer","arrangements":[{"associatedConf":"Conf2024","lodgingAmount":200,"travelAmount":"","honorarium":null}]}]`)
	}))
	defer srv.Close()

	c := New(srv.URL + "/").WithUserAgent("confadmin-test")
	speakers, err := c.GetAllSpeakers(context.Background())
	require.NoError(t, err)
	require.Len(t, speakers, 1)
	assert.Equal(t, "Archer", speakers[0].NameLast)
	arrangement := speakers[0].Arrangements[0]
	assert.Equal(t, domain.Amount("200"), arrangement.LodgingAmount)
	assert.True(t, arrangement.TravelAmount.IsMissing())
	assert.True(t, arrangement.Honorarium.IsMissing())
}

func TestDeleteSpeaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/deletespeaker", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "s1", body["id"])
		io.WriteString(w, `{"message":"deleted"}`)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).DeleteSpeaker(context.Background(), "s1"))
}

func TestUpdateSpeakerNotifyFlag(t *testing.T) {
	for _, notify := range []bool{true, false} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if notify {
				assert.Equal(t, "/api/updatespeaker/true", r.URL.Path)
			} else {
				assert.Equal(t, "/api/updatespeaker/false", r.URL.Path)
			}
			var speaker domain.Speaker
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&speaker))
			speaker.ProfileComplete = true
			json.NewEncoder(w).Encode(speaker)
		}))

		updated, err := New(srv.URL).UpdateSpeaker(context.Background(), domain.Speaker{ID: "s1"}, notify)
		srv.Close()
		require.NoError(t, err)
		assert.Equal(t, "s1", updated.ID)
		assert.True(t, updated.ProfileComplete)
	}
}

func TestSendToDropboxEscapesPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dropbox/my%20talk.pdf/slides/Jane%2FDoe", r.URL.EscapedPath())
		io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	result, err := New(srv.URL).SendToDropbox(context.Background(), "my talk.pdf", "slides", "Jane/Doe")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(result))
}

func TestNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetAllSessions(context.Background())
	assert.ErrorContains(t, err, "unexpected status code: 500")
}

func TestGetAllConferencesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/getallconferences":
			hits.Add(1)
			io.WriteString(w, `[{"title":"Conf2024","defaultConf":true}]`)
		case "/api/archiveconf":
			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Conf2024", body["conferenceTitle"])
			assert.Equal(t, true, body["archive"])
			io.WriteString(w, `{}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	conferences, err := c.GetAllConferences(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, "Conf2024", conferences[0].Title)

	_, err = c.GetAllConferences(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	_, err = c.GetAllConferences(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())

	require.NoError(t, c.ArchiveConference(ctx, "Conf2024", true))
	_, err = c.GetAllConferences(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, int32(3), hits.Load())
}

func TestDeleteTimeslotMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/deletetimeslot", r.URL.Path)
		var body timeslotRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2024-05-01", body.Date)
		if assert.NotNil(t, body.TimeSlot) {
			assert.Equal(t, "t1", body.TimeSlot.ID)
		}
		io.WriteString(w, `{"message":"slot has sessions"}`)
	}))
	defer srv.Close()

	msg, err := New(srv.URL).DeleteTimeslot(context.Background(), "Conf2024", "2024-05-01", domain.TimeSlot{ID: "t1", Start: "09:00", End: "10:00"})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageSlotHasSessions, msg.Message)
}

func TestRoomRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body roomRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		switch r.URL.Path {
		case "/api/addroom":
			assert.Equal(t, "Annex", body.Name)
			io.WriteString(w, `{"title":"Conf2024","rooms":["Main","Annex"]}`)
		case "/api/moveroom":
			assert.Equal(t, "Annex", body.Room)
			assert.Equal(t, domain.MoveUp, body.Direction)
			io.WriteString(w, `{"title":"Conf2024","rooms":["Annex","Main"]}`)
		case "/api/deleteroom":
			assert.Equal(t, "Main", body.Room)
			io.WriteString(w, `{"message":"room has sessions"}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	conf, err := c.AddRoom(ctx, "Conf2024", "Annex")
	require.NoError(t, err)
	assert.Equal(t, []string{"Main", "Annex"}, conf.Rooms)

	conf, err = c.MoveRoom(ctx, "Conf2024", "Annex", domain.MoveUp)
	require.NoError(t, err)
	assert.Equal(t, []string{"Annex", "Main"}, conf.Rooms)

	msg, err := c.DeleteRoom(ctx, "Conf2024", "Main")
	require.NoError(t, err)
	assert.Equal(t, domain.MessageRoomHasSessions, msg.Message)
}
