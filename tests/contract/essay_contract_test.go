package contract_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-essay-api/internal/config"
	"github.com/noah-isme/gema-essay-api/internal/handler"
	"github.com/noah-isme/gema-essay-api/internal/router"
	"github.com/noah-isme/gema-essay-api/internal/service"
)

func compileSchema(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()

	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", name))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	schema, err := compiler.Compile("file://" + filepath.ToSlash(schemaPath))
	require.NoError(t, err)
	return schema
}

func setupContractApp() *fiber.App {
	validate := validator.New(validator.WithRequiredStructEnabled())
	essayService := service.NewEssayService(nil, nil, validate, zerolog.Nop(), service.EssayServiceConfig{})

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Contract"}, router.Dependencies{
		EssayHandler: handler.NewEssayHandler(essayService, zerolog.Nop()),
	})
	return app
}

func postAndDecode(t *testing.T, app *fiber.App, path string, payload map[string]string) interface{} {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	return decoded
}

func TestEssayEvaluationContract(t *testing.T) {
	schema := compileSchema(t, "essay_evaluation.schema.json")
	app := setupContractApp()

	payloads := []map[string]string{
		{"assignment": strings.Repeat("word ", 150), "prompt": "", "grade_level": "9"},
		{
			"assignment":  "Uniforms help because they reduce cost. However, they limit expression. Therefore schools should be flexible.",
			"prompt":      "Should schools require uniforms?",
			"grade_level": "college",
		},
		{"assignment": "Tiny.", "prompt": "123", "grade_level": "11"},
	}

	for _, payload := range payloads {
		decoded := postAndDecode(t, app, "/api/v2/essays/evaluate", payload)
		require.NoError(t, schema.Validate(decoded))
	}
}

func TestEssaySampleContract(t *testing.T) {
	schema := compileSchema(t, "essay_sample.schema.json")
	app := setupContractApp()

	outline := postAndDecode(t, app, "/api/v2/essays/sample", map[string]string{
		"prompt":      strings.Repeat("Describe a turning point in history. ", 4),
		"grade_level": "12",
	})
	require.NoError(t, schema.Validate(outline))

	guidance := postAndDecode(t, app, "/api/v2/essays/sample", map[string]string{"prompt": ""})
	require.NoError(t, schema.Validate(guidance))
}
