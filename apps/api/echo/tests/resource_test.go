package tests

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/resource"
	"github.com/PrimotionStudio/z1academic/core/user"
	"github.com/PrimotionStudio/z1academic/tests"
)

func Test_resourceApi_books(t *testing.T) {
	app := setup(t)
	s := seedSchool(t, app)
	student := testutil.CreateUser(t, app.repos.Users, "Tobi", "tobi@test.ng", "+2348000000020", user.RoleStudent)

	book := func(author, deptID, requestedBy string) resource.Input {
		return resource.Input{
			Title:        "Algorithms",
			Author:       author,
			DepartmentID: deptID,
			FileLink:     "https://files.test/algorithms.pdf",
			CoverImage:   "https://files.test/algorithms.png",
			RequestedBy:  requestedBy,
		}
	}

	app.run(t, []httpTest{
		{
			name:     "book without author nor department",
			method:   http.MethodPost,
			path:     "/v1/books",
			body:     marshallObj(t, book("", "", "")),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "invalid input", map[string]string{
				"author":        "author is required",
				"department_id": "department_id is required",
			}),
		},
		{
			name:     "unknown department",
			method:   http.MethodPost,
			path:     "/v1/books",
			body:     marshallObj(t, book("Cormen", core.NewID(), "")),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "department not found", map[string]string{"department_id": "department not found"}),
		},
		{
			name:     "bad file link",
			method:   http.MethodPost,
			path:     "/v1/books",
			body:     []byte(`{"title": "Algorithms", "file_link": "algorithms.pdf", "cover_image": "https://files.test/c.png"}`),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "file_link must be a valid URL", map[string]string{"file_link": "file_link must be a valid URL"}),
		},
		{
			name:     "unknown book",
			method:   http.MethodGet,
			path:     "/v1/books/" + core.NewID(),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "book not found"),
		},
	})

	rec := app.serve(http.MethodPost, "/v1/books", marshallObj(t, book("Cormen", s.dept.ID, "")))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var published resource.Resource
	decode(t, rec, "book", &published)
	assert.Equal(t, resource.StatusPublished, published.PublishedStatus)

	rec = app.serve(http.MethodPost, "/v1/books", marshallObj(t, book("Knuth", s.dept.ID, student.ID)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var requested resource.Resource
	decode(t, rec, "book", &requested)
	assert.Equal(t, resource.StatusUnpublished, requested.PublishedStatus, "requested books wait for review")

	app.run(t, []httpTest{
		{
			name:     "published",
			method:   http.MethodGet,
			path:     "/v1/books",
			wantCode: http.StatusOK,
			wantData: marshallObj(t, map[string]interface{}{"message": "Books found", "books": []resource.Resource{published}}),
		},
		{
			name:     "unpublished",
			method:   http.MethodGet,
			path:     "/v1/books/unpublished",
			wantCode: http.StatusOK,
			wantData: marshallObj(t, map[string]interface{}{"message": "Books found", "books": []resource.Resource{requested}}),
		},
		{
			name:     "no videos",
			method:   http.MethodGet,
			path:     "/v1/videos",
			wantCode: http.StatusOK,
			wantData: []byte(`{"message": "Videos found", "videos": []}`),
		},
		{
			name:     "book is not a video",
			method:   http.MethodGet,
			path:     "/v1/videos/" + published.ID,
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "video not found"),
		},
		{
			name:     "bad status",
			method:   http.MethodPatch,
			path:     "/v1/books/" + requested.ID,
			body:     []byte(`{"published_status": "archived"}`),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "published_status must be one of [unpublished published]", map[string]string{
				"published_status": "published_status must be one of [unpublished published]",
			}),
		},
	})

	rec = app.serve(http.MethodPatch, "/v1/books/"+requested.ID, []byte(`{"published_status": " Published "}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, "book", &requested)
	assert.Equal(t, resource.StatusPublished, requested.PublishedStatus)

	rec = app.serve(http.MethodDelete, "/v1/books/"+published.ID)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	app.run(t, []httpTest{
		{
			name:     "published after review and delete",
			method:   http.MethodGet,
			path:     "/v1/books",
			wantCode: http.StatusOK,
			wantData: marshallObj(t, map[string]interface{}{"message": "Books found", "books": []resource.Resource{requested}}),
		},
	})
}

func Test_resourceApi_videos(t *testing.T) {
	app := setup(t)
	s := seedSchool(t, app)

	app.run(t, []httpTest{
		{
			name:     "video without course",
			method:   http.MethodPost,
			path:     "/v1/videos",
			body:     []byte(`{"title": "Lecture 1", "file_link": "https://files.test/l1.mp4", "cover_image": "https://files.test/l1.png"}`),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "invalid input", map[string]string{"course_id": "course_id is required"}),
		},
	})

	rec := app.serve(http.MethodPost, "/v1/videos", marshallObj(t, resource.Input{
		Title:      "Lecture 1",
		CourseID:   s.crs1.ID,
		FileLink:   "https://files.test/l1.mp4",
		CoverImage: "https://files.test/l1.png",
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var video resource.Resource
	decode(t, rec, "video", &video)
	assert.Equal(t, s.crs1.ID, video.CourseID)
	assert.Empty(t, video.DepartmentID)

	var msg string
	decode(t, rec, "message", &msg)
	assert.Equal(t, "Video created successfully", msg)
}

func Test_resourceApi_upload(t *testing.T) {
	app := setup(t)

	app.run(t, []httpTest{
		{
			name:     "not multipart",
			method:   http.MethodPost,
			path:     "/v1/uploads",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "file is required", map[string]string{"file": "file is required"}),
		},
	})

	rec := app.upload(t, "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "no file field")

	rec = app.upload(t, "empty.pdf", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, string(errBody(t, "file is empty", map[string]string{"file": "file is empty"})), rec.Body.String())

	content := []byte("%PDF-1.4 lecture notes")
	rec = app.upload(t, "Notes.PDF", content)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var up resource.Upload
	decode(t, rec, "upload", &up)
	assert.True(t, strings.HasPrefix(up.Key, "uploads/"))
	assert.True(t, strings.HasSuffix(up.Key, ".pdf"), "the extension is kept, lowered")
	assert.Equal(t, filesURL+"/"+up.Key, up.URL)

	stored, ok := app.files.Get(up.Key)
	require.True(t, ok)
	assert.Equal(t, content, stored)
}
