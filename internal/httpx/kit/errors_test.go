package kit

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"portfolio-api/internal/store"
	"portfolio-api/internal/validation"
)

func errorApp(hide bool, err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(hide)})
	app.Get("/t", func(c *fiber.Ctx) error { return err })
	return app
}

func TestErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
		msg    string
	}{
		{"validation", &validation.Error{Field: "name", Rule: "required", Message: "Name is required"}, 400, "E_VALIDATION", "Name is required"},
		{"duplicate", fmt.Errorf("insert: %w", &store.DuplicateKeyError{Field: "name"}), 400, "E_DUPLICATE", "Duplicate value for field 'name'"},
		{"not found", store.ErrNotFound, 404, "E_NOT_FOUND", "Resource not found"},
		{"not found as", NotFoundAs(store.ErrNotFound, "Skill not found"), 404, "E_NOT_FOUND", "Skill not found"},
		{"api error", TooManyRequests("slow down"), 429, "E_RATE_LIMITED", "slow down"},
		{"fiber error", fiber.ErrRequestEntityTooLarge, 413, "E_TOO_LARGE", fiber.ErrRequestEntityTooLarge.Message},
		{"unexpected", errors.New("boom"), 500, "E_INTERNAL", "boom"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := decode(t, errorApp(false, tc.err), "GET", "/t")
			if status != tc.status || body["code"] != tc.code || body["message"] != tc.msg || body["success"] != false {
				t.Fatalf("got %d %v", status, body)
			}
		})
	}
}

func TestErrorHandler_HidesInternalInProduction(t *testing.T) {
	status, body := decode(t, errorApp(true, errors.New("dial tcp 10.0.0.5:27017: refused")), "GET", "/t")
	if status != 500 || body["message"] != "Internal Server Error" {
		t.Fatalf("got %d %v", status, body)
	}
	// client errors keep their message
	_, body = decode(t, errorApp(true, BadRequest("bad", nil)), "GET", "/t")
	if body["message"] != "bad" {
		t.Fatalf("got %v", body)
	}
}

func TestNotFoundAs_PassesOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	if NotFoundAs(boom, "x") != boom {
		t.Fatalf("other errors must pass through")
	}
}

func TestBindStrict(t *testing.T) {
	type in struct {
		Name string `json:"name"`
	}
	cases := []struct {
		body string
		msg  string
	}{
		{`{"name":"a","admin":true}`, `"admin" is not allowed`},
		{`{"name":1}`, "Invalid value for field 'name'"},
		{`{"name":`, "Invalid JSON payload"},
		{`{"name":"a"} {}`, "Invalid JSON payload"},
	}
	for _, tc := range cases {
		app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(false)})
		app.Post("/t", func(c *fiber.Ctx) error {
			var v in
			if err := BindStrict(c, &v); err != nil {
				return err
			}
			return OK(c, v)
		})
		req := newJSONRequest("POST", "/t", tc.body)
		res, err := app.Test(req)
		if err != nil {
			t.Fatalf("request err: %v", err)
		}
		if res.StatusCode != 400 {
			t.Fatalf("%s: status %d", tc.body, res.StatusCode)
		}
		if body := readAll(t, res.Body); !strings.Contains(body, jsonEscape(tc.msg)) {
			t.Errorf("%s: body %s does not contain %s", tc.body, body, tc.msg)
		}
	}
}

func TestBind_MergesOntoExisting(t *testing.T) {
	type doc struct {
		Title string `json:"title"`
		Order int    `json:"order"`
	}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(false)})
	app.Put("/t", func(c *fiber.Ctx) error {
		v := doc{Title: "kept", Order: 3}
		if err := Bind(c, &v); err != nil {
			return err
		}
		return OK(c, v)
	})
	res, err := app.Test(newJSONRequest("PUT", "/t", `{"order":7}`))
	if err != nil {
		t.Fatalf("request err: %v", err)
	}
	body := readAll(t, res.Body)
	if !strings.Contains(body, `"title":"kept"`) || !strings.Contains(body, `"order":7`) {
		t.Fatalf("unexpected merge: %s", body)
	}
}

func TestBind_IgnoresContentType(t *testing.T) {
	type doc struct {
		Title string `json:"title"`
	}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(false)})
	app.Post("/t", func(c *fiber.Ctx) error {
		var v doc
		if err := Bind(c, &v); err != nil {
			return err
		}
		return OK(c, v)
	})
	cases := []struct {
		body   string
		status int
		want   string
	}{
		{`{"title":"plain"}`, 200, `"title":"plain"`},
		{`{"title":`, 400, "Invalid JSON payload"},
		{`{"title":5}`, 400, "Invalid value for field 'title'"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("POST", "/t", strings.NewReader(tc.body))
		res, err := app.Test(req)
		if err != nil {
			t.Fatalf("request err: %v", err)
		}
		if res.StatusCode != tc.status {
			t.Fatalf("%s: status %d", tc.body, res.StatusCode)
		}
		if body := readAll(t, res.Body); !strings.Contains(body, jsonEscape(tc.want)) {
			t.Errorf("%s: body %s does not contain %s", tc.body, body, tc.want)
		}
	}
}
