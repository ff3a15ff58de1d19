package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFollowFlow(t *testing.T) {
	srv, app, db := setupTestServer(t, nil)

	alice, aliceToken := createTestUser(t, srv, db, "alice", false)
	bob, bobToken := createTestUser(t, srv, db, "bob", false)

	followPath := fmt.Sprintf("/api/users/%d/follow", alice.ID)

	// bob follows alice
	resp := doRequest(t, app, http.MethodPost, followPath, bobToken, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	follow := body["follow"].(map[string]any)
	assert.Equal(t, float64(alice.ID), follow["followed_id"])
	assert.Equal(t, float64(bob.ID), follow["follower_id"])

	t.Run("DuplicateFollow", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, followPath, bobToken, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "Already following this user", errorMessage(t, body))
	})

	t.Run("SelfFollow", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, followPath, aliceToken, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "Cannot follow yourself", errorMessage(t, body))
	})

	t.Run("FollowMissingUser", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/users/99999/follow", bobToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("FollowersAndFollowing", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/followers", alice.ID), aliceToken, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		followers := body["followers"].([]any)
		assert.Len(t, followers, 1)
		assert.Equal(t, "bob", followers[0].(map[string]any)["username"])

		resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/following", bob.ID), bobToken, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body = decodeBody(t, resp)
		following := body["following"].([]any)
		assert.Len(t, following, 1)
		assert.Equal(t, "alice", following[0].(map[string]any)["username"])
	})

	t.Run("Unfollow", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodDelete, followPath, bobToken, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		// not following anymore
		resp = doRequest(t, app, http.MethodDelete, followPath, bobToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/followers", alice.ID), aliceToken, nil)
		body := decodeBody(t, resp)
		assert.Empty(t, body["followers"])
	})
}
