package rest

import (
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go.creack.net/eqcalc/config"
	"go.creack.net/eqcalc/evaluator"
)

// logger instance
var log = logrus.New()

// SetLogLevel changes the server's logging level.
func SetLogLevel(level logrus.Level) {
	log.SetLevel(level)
}

// GetLogLevel gets the server's logging level.
func GetLogLevel() logrus.Level {
	return log.GetLevel()
}

// DefaultSession is used when a request does not name a session.
const DefaultSession = "default"

// Server evaluates equations over HTTP. Each named session owns its own
// variable table.
type Server struct {
	Config config.Config

	// Logging level hooks for the /logging/level endpoint, which is only
	// registered when both are set.
	SetLoggingLevel func(name, level string) error
	LoggingLevels   func() map[string]string

	mu       sync.Mutex
	sessions map[string]*evaluator.Session
}

// NewServer creates a server with no sessions.
func NewServer(cfg config.Config) *Server {
	return &Server{
		Config:   cfg,
		sessions: map[string]*evaluator.Session{},
	}
}

// Router creates the HTTP router with every endpoint registered.
func (server *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(logRequests)

	router.POST("/eval", server.DoEval)
	router.GET("/vars", server.DoVars)
	router.DELETE("/session", server.DoDropSession)
	if server.SetLoggingLevel != nil && server.LoggingLevels != nil {
		router.GET("/logging/level", server.DoLoggingLevel)
		router.POST("/logging/level", server.DoLoggingLevel)
	}
	return router
}

func logRequests(ctx *gin.Context) {
	beg := time.Now()
	path := ctx.Request.URL.Path
	ctx.Next()
	log.WithFields(logrus.Fields{
		"method":   ctx.Request.Method,
		"path":     path,
		"status":   ctx.Writer.Status(),
		"duration": time.Since(beg).String(),
	}).Info("request served")
}

// EvalParams contains all the bound parameters for the /eval endpoint.
type EvalParams struct {
	Session  string `form:"session" json:"session"`
	Equation string `form:"equation" json:"equation" binding:"required"`
}

// EvalResult is the /eval response.
type EvalResult struct {
	Session  string      `json:"session" msgpack:"session"`
	Equation string      `json:"equation" msgpack:"equation"`
	Kind     string      `json:"kind" msgpack:"kind"`                       // "int", "float", "bool" or "assignment"
	Result   string      `json:"result" msgpack:"result"`                   // printable result
	Name     string      `json:"name,omitempty" msgpack:"name,omitempty"`   // assigned variable
	Value    interface{} `json:"value,omitempty" msgpack:"value,omitempty"` // number or boolean, when representable
}

// Handle /eval endpoint.
func (server *Server) DoEval(ctx *gin.Context) {
	defer RecoverFromPanic(ctx)

	var params EvalParams
	if err := ctx.ShouldBind(&params); err != nil {
		panic(NewError(http.StatusBadRequest, err.Error()).
			WithDetails("failed to parse request parameters"))
	}
	if params.Session == "" {
		params.Session = DefaultSession
	}

	session := server.getSession(params.Session, true)
	v, err := session.Eval(params.Equation)
	if err != nil {
		panic(equationError(err))
	}

	res := EvalResult{
		Session:  params.Session,
		Equation: params.Equation,
		Result:   v.String(),
	}
	if a, ok := v.(evaluator.Assignment); ok {
		res.Name = a.Name
		v = a.Value
		res.Kind = "assignment"
	}
	kind, value := jsonValue(v)
	if res.Kind == "" {
		res.Kind = kind
	}
	res.Value = value
	render(ctx, http.StatusOK, res)
}

// Handle /vars endpoint.
func (server *Server) DoVars(ctx *gin.Context) {
	defer RecoverFromPanic(ctx)

	name := ctx.DefaultQuery("session", DefaultSession)
	session := server.getSession(name, false)
	if session == nil {
		panic(NewError(http.StatusNotFound, "no such session").WithDetails(name))
	}

	vars := map[string]string{}
	for k, v := range session.Vars().Snapshot() {
		vars[k] = v.String()
	}
	render(ctx, http.StatusOK, map[string]interface{}{
		"session": name,
		"vars":    vars,
	})
}

// Handle DELETE /session endpoint.
func (server *Server) DoDropSession(ctx *gin.Context) {
	defer RecoverFromPanic(ctx)

	name := ctx.DefaultQuery("session", DefaultSession)
	server.mu.Lock()
	_, ok := server.sessions[name]
	delete(server.sessions, name)
	server.mu.Unlock()
	if !ok {
		panic(NewError(http.StatusNotFound, "no such session").WithDetails(name))
	}

	log.WithField("session", name).Debug("session dropped")
	render(ctx, http.StatusOK, map[string]interface{}{
		"session": name,
		"dropped": true,
	})
}

// Handle /logging/level endpoint: change logger's level.
func (server *Server) DoLoggingLevel(ctx *gin.Context) {
	defer RecoverFromPanic(ctx)

	// try to set levels from query
	for key, vals := range ctx.Request.URL.Query() {
		for _, level := range vals { // usually one item
			if err := server.SetLoggingLevel(key, level); err != nil {
				panic(NewError(http.StatusBadRequest, err.Error()).
					WithDetails("failed to change logging level"))
			}
		}
	}

	// print current levels
	render(ctx, http.StatusOK, server.LoggingLevels())
}

// getSession finds a session by name, creating it if requested.
func (server *Server) getSession(name string, create bool) *evaluator.Session {
	server.mu.Lock()
	defer server.mu.Unlock()

	if s, ok := server.sessions[name]; ok {
		return s
	}
	if !create {
		return nil
	}
	if limit := server.Config.Server.MaxSessions; limit > 0 && len(server.sessions) >= limit {
		panic(NewError(http.StatusTooManyRequests, "too many sessions").
			WithDetails("drop a session first"))
	}

	s := server.Config.NewSession()
	server.sessions[name] = s
	log.WithField("session", name).Debug("session created")
	return s
}

// jsonValue converts a number or boolean into its JSON form. Infinities and
// NaN have no JSON form and only show up in the printable result.
func jsonValue(v evaluator.Value) (string, interface{}) {
	switch v := v.(type) {
	case evaluator.Int:
		return "int", int64(v)
	case evaluator.Float:
		f := float64(v)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return "float", nil
		}
		return "float", f
	case evaluator.Bool:
		return "bool", bool(v)
	}
	return "", nil
}
