package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/teampulse/teampulse/internal/adapters/http/api"
	repository "github.com/teampulse/teampulse/internal/adapters/repository"
	service "github.com/teampulse/teampulse/internal/app"
	"github.com/teampulse/teampulse/internal/domain/model"
	"github.com/teampulse/teampulse/pkg/logger"
)

func init() {
	_ = logger.Init()
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	store := repository.NewMemStore(ctx,
		repository.WithCategories([]model.Category{
			{ID: "cat-craft", Name: "Craft"},
		}),
		repository.WithSkills([]model.Skill{
			{ID: "sk-go", Name: "Go", CategoryIDs: []string{"cat-craft"}},
			{ID: "sk-review", Name: "Code Review", CategoryIDs: []string{"cat-craft"}},
		}),
	)
	svc := service.New(
		service.WithStore(store),
		service.WithWorkerCount(1),
		service.WithQueueSize(64),
	)
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(ctx, mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 && raw[0] == '{' {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp.StatusCode, decoded
}

func doJSONList(t *testing.T, url string) (int, []map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	var decoded []map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func createMember(t *testing.T, base, name string) string {
	t.Helper()
	status, body := doJSON(t, http.MethodPost, base+"/members", map[string]any{
		"name":          name,
		"role":          "Engineer",
		"start_date":    "2023-06-15",
		"current_level": "Level 2",
	})
	if status != http.StatusCreated {
		t.Fatalf("create member: status %d body %v", status, body)
	}
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatalf("create member: missing id in %v", body)
	}
	return id
}

func TestMemberEndpoints(t *testing.T) {
	Convey("Given a running API server", t, func() {
		srv := newTestServer(t)

		Convey("When a member is created", func() {
			id := createMember(t, srv.URL, "Ada")

			Convey("Then it can be fetched", func() {
				status, body := doJSON(t, http.MethodGet, srv.URL+"/members/"+id, nil)
				So(status, ShouldEqual, http.StatusOK)
				So(body["name"], ShouldEqual, "Ada")
				So(body["start_date"], ShouldEqual, "2023-06-15")
			})

			Convey("And it can be updated", func() {
				status, body := doJSON(t, http.MethodPut, srv.URL+"/members/"+id, map[string]any{
					"name":          "Ada",
					"role":          "Staff Engineer",
					"start_date":    "2023-06-15",
					"current_level": "Senior Level",
				})
				So(status, ShouldEqual, http.StatusOK)
				So(body["role"], ShouldEqual, "Staff Engineer")
				So(body["current_level"], ShouldEqual, "Senior Level")
			})

			Convey("And it can be deleted", func() {
				status, _ := doJSON(t, http.MethodDelete, srv.URL+"/members/"+id, nil)
				So(status, ShouldEqual, http.StatusNoContent)

				status, _ = doJSON(t, http.MethodGet, srv.URL+"/members/"+id, nil)
				So(status, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the payload is not JSON", func() {
			resp, err := http.Post(srv.URL+"/members", "application/json", bytes.NewBufferString("{nope"))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When required fields are missing", func() {
			status, body := doJSON(t, http.MethodPost, srv.URL+"/members", map[string]any{
				"role": "Engineer",
			})
			So(status, ShouldEqual, http.StatusBadRequest)
			So(body["code"], ShouldEqual, "bad_request")
		})

		Convey("When the start date is garbage", func() {
			status, _ := doJSON(t, http.MethodPost, srv.URL+"/members", map[string]any{
				"name":          "Ada",
				"start_date":    "mid-June",
				"current_level": "Level 2",
			})
			So(status, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Then fetching an unknown member returns 404", func() {
			status, body := doJSON(t, http.MethodGet, srv.URL+"/members/ghost", nil)
			So(status, ShouldEqual, http.StatusNotFound)
			So(body["code"], ShouldEqual, "not_found")
		})
	})
}

func TestRecordEndpoints(t *testing.T) {
	Convey("Given a server with one member", t, func() {
		srv := newTestServer(t)
		id := createMember(t, srv.URL, "Ada")

		Convey("When a 1:1 is posted", func() {
			status, body := doJSON(t, http.MethodPost, srv.URL+"/members/"+id+"/one-on-ones", map[string]any{
				"meeting_date": "2026-02-08",
				"notes":        "quarterly goals",
			})

			Convey("Then it is created and listed most recent first", func() {
				So(status, ShouldEqual, http.StatusCreated)
				So(body["meeting_date"], ShouldEqual, "2026-02-08")

				listStatus, list := doJSONList(t, srv.URL+"/members/"+id+"/one-on-ones")
				So(listStatus, ShouldEqual, http.StatusOK)
				So(list, ShouldHaveLength, 1)
			})
		})

		Convey("When a 1:1 has an unparseable date", func() {
			status, _ := doJSON(t, http.MethodPost, srv.URL+"/members/"+id+"/one-on-ones", map[string]any{
				"meeting_date": "someday",
			})
			So(status, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When a quarterly review omits quarter and year", func() {
			status, body := doJSON(t, http.MethodPost, srv.URL+"/members/"+id+"/reviews", map[string]any{
				"type":        "quarterly",
				"review_date": "2026-02-10",
				"summary":     "steady quarter",
			})

			Convey("Then they are derived from the date", func() {
				So(status, ShouldEqual, http.StatusCreated)
				So(body["quarter"], ShouldEqual, 1)
				So(body["year"], ShouldEqual, 2026)
			})
		})

		Convey("When a review type is unknown", func() {
			status, _ := doJSON(t, http.MethodPost, srv.URL+"/members/"+id+"/reviews", map[string]any{
				"type":        "monthly",
				"review_date": "2026-02-10",
			})
			So(status, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestAssessmentAndMaturityEndpoints(t *testing.T) {
	Convey("Given a server with one member", t, func() {
		srv := newTestServer(t)
		id := createMember(t, srv.URL, "Ada")

		Convey("When a leader/self pair is put for a skill", func() {
			status, body := doJSON(t, http.MethodPut, srv.URL+"/members/"+id+"/assessments/sk-go", map[string]any{
				"leader_rating": "lvl-2",
				"self_rating":   "lvl-1",
			})

			Convey("Then it is stored", func() {
				So(status, ShouldEqual, http.StatusOK)
				So(body["skill_id"], ShouldEqual, "sk-go")

				listStatus, list := doJSONList(t, srv.URL+"/members/"+id+"/assessments")
				So(listStatus, ShouldEqual, http.StatusOK)
				So(list, ShouldHaveLength, 1)
			})

			Convey("And the maturity report scores it", func() {
				mStatus, report := doJSON(t, http.MethodGet, srv.URL+"/members/"+id+"/maturity", nil)
				So(mStatus, ShouldEqual, http.StatusOK)
				So(report["member_id"], ShouldEqual, id)

				categories, ok := report["categories"].([]any)
				So(ok, ShouldBeTrue)
				So(categories, ShouldHaveLength, 1)
				craft, ok := categories[0].(map[string]any)
				So(ok, ShouldBeTrue)
				So(craft["avg_score"], ShouldEqual, 2.0)
			})
		})

		Convey("When the skill is unknown", func() {
			status, _ := doJSON(t, http.MethodPut, srv.URL+"/members/"+id+"/assessments/sk-nope", map[string]any{
				"leader_rating": "lvl-2",
			})
			So(status, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When a rating uses an unknown level id", func() {
			status, _ := doJSON(t, http.MethodPut, srv.URL+"/members/"+id+"/assessments/sk-go", map[string]any{
				"leader_rating": "lvl-99",
			})
			So(status, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestGrowthAreaEndpoints(t *testing.T) {
	Convey("Given a server with one member", t, func() {
		srv := newTestServer(t)
		id := createMember(t, srv.URL, "Ada")
		base := srv.URL + "/members/" + id + "/growth-areas"

		add := func(title string) (int, map[string]any) {
			return doJSON(t, http.MethodPost, base, map[string]any{"title": title})
		}

		Convey("When three areas are active", func() {
			status, first := add("delegate more")
			So(status, ShouldEqual, http.StatusCreated)
			status, _ = add("public speaking")
			So(status, ShouldEqual, http.StatusCreated)
			status, _ = add("estimation")
			So(status, ShouldEqual, http.StatusCreated)

			Convey("Then a fourth is rejected with 409", func() {
				status, body := add("writing")
				So(status, ShouldEqual, http.StatusConflict)
				So(body["code"], ShouldEqual, "conflict")
			})

			Convey("And resolving one frees a slot", func() {
				areaID, _ := first["id"].(string)
				status, resolved := doJSON(t, http.MethodPut, base+"/"+areaID+"/resolve", nil)
				So(status, ShouldEqual, http.StatusOK)
				So(resolved["status"], ShouldEqual, "resolved")

				status, _ = add("writing")
				So(status, ShouldEqual, http.StatusCreated)
			})
		})

		Convey("When resolving an unknown area", func() {
			status, _ := doJSON(t, http.MethodPut, base+"/nope/resolve", nil)
			So(status, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestCadenceEndpoints(t *testing.T) {
	Convey("Given a server with one member and no records", t, func() {
		srv := newTestServer(t)
		id := createMember(t, srv.URL, "Ada")

		Convey("When cadence is asked for a fixed date", func() {
			status, report := doJSON(t, http.MethodGet, srv.URL+"/members/"+id+"/cadence?now=2026-02-10", nil)

			Convey("Then the meeting tracks are overdue", func() {
				So(status, ShouldEqual, http.StatusOK)
				So(report["one_on_one"], ShouldEqual, "overdue")
				So(report["quarterly"], ShouldEqual, "overdue")
				So(report["annual"], ShouldEqual, "current")
			})
		})

		Convey("When the now parameter is garbage", func() {
			status, _ := doJSON(t, http.MethodGet, srv.URL+"/members/"+id+"/cadence?now=tomorrow", nil)
			So(status, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When team compliance is asked", func() {
			status, summary := doJSON(t, http.MethodGet, srv.URL+"/compliance?now=2026-02-10", nil)

			Convey("Then the member counts under its worst track", func() {
				So(status, ShouldEqual, http.StatusOK)
				So(summary["overdue"], ShouldEqual, 1)
				So(summary["due_soon"], ShouldEqual, 0)
				So(summary["current"], ShouldEqual, 0)
			})
		})
	})
}

func TestReferenceAndOpsEndpoints(t *testing.T) {
	Convey("Given a running API server", t, func() {
		srv := newTestServer(t)

		Convey("Then the default level ladder is served", func() {
			status, levels := doJSONList(t, srv.URL+"/levels")
			So(status, ShouldEqual, http.StatusOK)
			So(levels, ShouldHaveLength, 5)
			So(levels[0]["name"], ShouldEqual, "Associate")
		})

		Convey("When a skill is put", func() {
			status, body := doJSON(t, http.MethodPut, srv.URL+"/skills/sk-arch", map[string]any{
				"name":         "Architecture",
				"category_ids": []string{"cat-craft"},
			})
			So(status, ShouldEqual, http.StatusOK)
			So(body["id"], ShouldEqual, "sk-arch")

			listStatus, skills := doJSONList(t, srv.URL+"/skills")
			So(listStatus, ShouldEqual, http.StatusOK)
			So(skills, ShouldHaveLength, 3)
		})

		Convey("Then stats report the running service", func() {
			status, stats := doJSON(t, http.MethodGet, srv.URL+"/stats", nil)
			So(status, ShouldEqual, http.StatusOK)
			So(stats["started"], ShouldEqual, true)
		})

		Convey("Then healthz serves the Prometheus registry", func() {
			resp, err := http.Get(srv.URL + "/healthz")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			raw, err := io.ReadAll(resp.Body)
			So(err, ShouldBeNil)
			So(string(raw), ShouldContainSubstring, "teampulse")
		})
	})
}
