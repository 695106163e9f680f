package validation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingRequest_Valid(t *testing.T) {
	v := New()

	req := CreateBookingRequest{
		ServiceName:   "Gel Manicure",
		CustomerName:  "Min-ji Kim",
		CustomerPhone: "not-a-phone-but-fine",
		BookingDate:   "1999-01-01", // past dates are not checked here
		BookingTime:   "25:99",
	}

	assert.NoError(t, v.Struct(req))
}

func TestCreateBookingRequest_MissingFields(t *testing.T) {
	v := New()

	req := CreateBookingRequest{
		ServiceName: "Gel Manicure",
		// everything else missing
		Notes: "notes alone are not enough",
	}

	err := v.Struct(req)
	require.Error(t, err)
	assert.ElementsMatch(t,
		[]string{"customerName", "customerPhone", "bookingDate", "bookingTime"},
		MissingFields(err),
	)
}

func TestMissingFields_OtherErrors(t *testing.T) {
	assert.Nil(t, MissingFields(nil))
	assert.Nil(t, MissingFields(ErrMalformedBody))
}

func TestBindJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	bind := func(body string) (CreateBookingRequest, error) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		var out CreateBookingRequest
		err := BindJSON(c, &out)
		return out, err
	}

	out, err := bind(`{"serviceName":"Pedicure","salonId":"ignored","notes":"hi"}`)
	require.NoError(t, err)
	assert.Equal(t, FormValue("Pedicure"), out.ServiceName)
	assert.Equal(t, FormValue("hi"), out.Notes)

	// decoding succeeds even with missing fields; validation is separate
	_, err = bind(`{}`)
	assert.NoError(t, err)

	for _, body := range []string{``, `null`, ` null `, `[]`, `{"serviceName":`, `{"bookingTime":930}`, `{"customerName":true}`, `{"notes":{}}`} {
		_, err := bind(body)
		assert.ErrorIs(t, err, ErrMalformedBody, "body %q", body)
	}
}

func TestFormValue_FalsyValuesAreMissing(t *testing.T) {
	v := New()

	for _, raw := range []string{`""`, `null`, `false`, `0`, `0.0`, `-0`} {
		body := `{"serviceName":` + raw + `,"customerName":"A","customerPhone":"1","bookingDate":"2026-11-02","bookingTime":"10:00","notes":` + raw + `}`

		var req CreateBookingRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req), "value %s", raw)
		assert.Equal(t, FormValue(""), req.ServiceName)
		assert.Equal(t, FormValue(""), req.Notes)
		assert.Equal(t, []string{"serviceName"}, MissingFields(v.Struct(req)), "value %s", raw)
	}
}

func TestFormValue_Strings(t *testing.T) {
	var f FormValue
	require.NoError(t, json.Unmarshal([]byte(`"Gel \u0026 Polish"`), &f))
	assert.Equal(t, "Gel & Polish", f.String())

	// whitespace is a value, not an empty field
	require.NoError(t, json.Unmarshal([]byte(`" "`), &f))
	assert.Equal(t, FormValue(" "), f)

	assert.Error(t, json.Unmarshal([]byte(`42`), &f))
	assert.Error(t, json.Unmarshal([]byte(`true`), &f))
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &f))
}
