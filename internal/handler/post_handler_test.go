package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maksido/blog-api/internal/models"
	"github.com/maksido/blog-api/pkg/response"
)

func decodePost(t *testing.T, body []byte) models.Post {
	t.Helper()
	var envelope struct {
		Data models.Post `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Data
}

func TestPostRoutes(t *testing.T) {
	router := buildTestRouter(t)
	access, _ := registerAlice(t, router)

	t.Run("list is public and reports cache state", func(t *testing.T) {
		resp := performRequest(router, jsonRequest(http.MethodGet, "/api/v1/posts", ""))
		require.Equal(t, http.StatusOK, resp.Code)

		var envelope response.Envelope
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
		require.Contains(t, envelope.Meta, "cache_hit")
	})

	t.Run("create requires auth", func(t *testing.T) {
		resp := performRequest(router, jsonRequest(http.MethodPost, "/api/v1/posts",
			`{"title":"hello","body":"world"}`))
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	var created models.Post

	t.Run("create", func(t *testing.T) {
		resp := performRequest(router, jsonRequest(http.MethodPost, "/api/v1/posts",
			`{"title":"hello","body":"world"}`, access))
		require.Equal(t, http.StatusCreated, resp.Code)
		created = decodePost(t, resp.Body.Bytes())
		require.NotEmpty(t, created.ID)
	})

	t.Run("get by id is public", func(t *testing.T) {
		resp := performRequest(router, jsonRequest(http.MethodGet, "/api/v1/posts/"+created.ID, ""))
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"title":"hello"`)
	})

	t.Run("update own post", func(t *testing.T) {
		payload := fmt.Sprintf(`{"postId":%q,"title":"edited","body":"world"}`, created.ID)
		resp := performRequest(router, jsonRequest(http.MethodPut, "/api/v1/posts", payload, access))
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"title":"edited"`)
	})

	t.Run("update someone else's post is not found", func(t *testing.T) {
		intruder := performRequest(router, jsonRequest(http.MethodPost, "/api/v1/auth/registration",
			`{"userName":"mallory","email":"mallory@x.com","password":"secret1"}`))
		require.Equal(t, http.StatusOK, intruder.Code)
		intruderAccess := cookieByName(t, intruder, "accessToken")

		payload := fmt.Sprintf(`{"postId":%q,"title":"hijack","body":"x"}`, created.ID)
		resp := performRequest(router, jsonRequest(http.MethodPut, "/api/v1/posts", payload, intruderAccess))
		require.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("delete own post", func(t *testing.T) {
		resp := performRequest(router, jsonRequest(http.MethodDelete, "/api/v1/posts/"+created.ID, "", access))
		require.Equal(t, http.StatusOK, resp.Code)

		gone := performRequest(router, jsonRequest(http.MethodGet, "/api/v1/posts/"+created.ID, ""))
		require.Equal(t, http.StatusNotFound, gone.Code)
	})
}

func TestCommentRoutes(t *testing.T) {
	router := buildTestRouter(t)
	access, _ := registerAlice(t, router)

	create := performRequest(router, jsonRequest(http.MethodPost, "/api/v1/posts",
		`{"title":"hello","body":"world"}`, access))
	require.Equal(t, http.StatusCreated, create.Code)
	post := decodePost(t, create.Body.Bytes())

	t.Run("write requires auth", func(t *testing.T) {
		payload := fmt.Sprintf(`{"postId":%q,"message":"nice"}`, post.ID)
		resp := performRequest(router, jsonRequest(http.MethodPost, "/api/v1/comments", payload))
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	var commentID string

	t.Run("write", func(t *testing.T) {
		payload := fmt.Sprintf(`{"postId":%q,"message":"nice"}`, post.ID)
		resp := performRequest(router, jsonRequest(http.MethodPost, "/api/v1/comments", payload, access))
		require.Equal(t, http.StatusCreated, resp.Code)

		var envelope struct {
			Data models.Comment `json:"data"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
		require.Equal(t, "alice", envelope.Data.UserName)
		commentID = envelope.Data.ID
	})

	t.Run("write on unknown post is not found", func(t *testing.T) {
		resp := performRequest(router, jsonRequest(http.MethodPost, "/api/v1/comments",
			`{"postId":"no-such-post","message":"nice"}`, access))
		require.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("list is public", func(t *testing.T) {
		resp := performRequest(router, jsonRequest(http.MethodGet, "/api/v1/comments/"+post.ID, ""))
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"message":"nice"`)
	})

	t.Run("delete own comment", func(t *testing.T) {
		resp := performRequest(router, jsonRequest(http.MethodDelete, "/api/v1/comments/"+commentID, "", access))
		require.Equal(t, http.StatusOK, resp.Code)

		listed := performRequest(router, jsonRequest(http.MethodGet, "/api/v1/comments/"+post.ID, ""))
		require.Equal(t, http.StatusOK, listed.Code)
		require.NotContains(t, listed.Body.String(), `"message":"nice"`)
	})
}
