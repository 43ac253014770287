package handler

import (
	"net/http"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopadmin/backend/tests/testutil"
)

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	handler := NewSystemHandler()

	testutil.RunHTTPTestCases(t, handler.GetSystemInfo, []testutil.HTTPTestCase{
		{
			Name:           "returns service info",
			Method:         http.MethodGet,
			Path:           "/api/v1/system/info",
			ExpectedStatus: http.StatusOK,
			Validate: func(t *testing.T, tc *testutil.TestContext) {
				testutil.AssertSuccessResponse(t, tc)

				resp := testutil.JSONResponse(t, tc)
				data := resp["data"].(map[string]interface{})
				assert.Equal(t, "Shop Admin API", data["name"])
				assert.Equal(t, runtime.Version(), data["go_version"])
				assert.NotEmpty(t, data["uptime"])
			},
		},
	})
}
