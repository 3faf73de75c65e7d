package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogRecorder() (*slog.Logger, *strings.Builder) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return logger, &buf
}

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		status    int
		body      string
		wantLevel string
	}{
		{
			name:      "чтение ленты сообщений логируется как INFO",
			method:    http.MethodGet,
			path:      "/messages",
			status:    http.StatusOK,
			body:      `{"data":[]}`,
			wantLevel: "INFO",
		},
		{
			name:      "создание сущности логируется как INFO",
			method:    http.MethodPost,
			path:      "/conversations",
			status:    http.StatusCreated,
			body:      `{"data":{"id":"c-1"}}`,
			wantLevel: "INFO",
		},
		{
			name:      "отсутствующая сущность логируется как WARN",
			method:    http.MethodGet,
			path:      "/messages/m-404",
			status:    http.StatusNotFound,
			body:      `{"message":"entity not found"}`,
			wantLevel: "WARN",
		},
		{
			name:      "ошибка хранилища логируется как ERROR",
			method:    http.MethodPut,
			path:      "/messages/m-1",
			status:    http.StatusInternalServerError,
			body:      `{"message":"internal server error"}`,
			wantLevel: "ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logBuf := newLogRecorder()

			handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.RemoteAddr = "10.1.0.1:50000"
			req.Header.Set("User-Agent", "chatsync/0.1.0")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			require.Equal(t, tt.status, w.Code)

			logOutput := logBuf.String()
			assert.Contains(t, logOutput, "HTTP request")
			assert.Contains(t, logOutput, tt.method)
			assert.Contains(t, logOutput, tt.path)
			assert.Contains(t, logOutput, "10.1.0.1:50000")
			assert.Contains(t, logOutput, "chatsync/0.1.0")
			// Уровень записи следует за классом статуса
			assert.Contains(t, logOutput, tt.wantLevel)
		})
	}
}

func TestLoggingMiddleware_CapturesResponseMetrics(t *testing.T) {
	logger, logBuf := newLogRecorder()

	payload := `{"data":{"id":"m-1"}}`
	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(payload))
	}))

	req := httptest.NewRequest(http.MethodGet, "/messages/m-1", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	logOutput := logBuf.String()
	assert.Contains(t, logOutput, "status=200")
	assert.Contains(t, logOutput, "duration_ms")
	assert.Contains(t, logOutput, "bytes_written="+strconv.Itoa(len(payload)))
}

func TestLoggingWithSkip(t *testing.T) {
	logger, logBuf := newLogRecorder()

	// Health check и WebSocket апгрейд ходят мимо логирования
	handler := LoggingWithSkip(logger, []string{"/health", "/ws"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	t.Run("пропущенные пути не попадают в лог", func(t *testing.T) {
		for _, path := range []string{"/health", "/ws"} {
			logBuf.Reset()

			req := httptest.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Empty(t, logBuf.String(), "путь %s не должен логироваться", path)
		}
	})

	t.Run("остальные пути логируются как обычно", func(t *testing.T) {
		logBuf.Reset()

		req := httptest.NewRequest(http.MethodGet, "/conversations", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, logBuf.String(), "HTTP request")
		assert.Contains(t, logBuf.String(), "/conversations")
	})
}

func TestResponseWriter_CapturesStatusCode(t *testing.T) {
	t.Run("явный WriteHeader фиксирует статус", func(t *testing.T) {
		rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}

		rw.WriteHeader(http.StatusConflict)
		_, _ = rw.Write([]byte(`{"message":"entity already exists"}`))

		assert.Equal(t, http.StatusConflict, rw.statusCode)
	})

	t.Run("без WriteHeader остается 200 по умолчанию", func(t *testing.T) {
		rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}

		_, _ = rw.Write([]byte(`{"data":[]}`))

		assert.Equal(t, http.StatusOK, rw.statusCode)
	})
}

func TestResponseWriter_AccumulatesBytesWritten(t *testing.T) {
	rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}

	chunks := []string{`{"data":`, `{"id":"m-1"}`, `}`}
	total := 0
	for _, chunk := range chunks {
		n, err := rw.Write([]byte(chunk))
		require.NoError(t, err)
		assert.Equal(t, len(chunk), n)
		total += n
	}

	assert.Equal(t, int64(total), rw.written)
}
