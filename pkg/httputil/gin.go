package httputil

import "github.com/gin-gonic/gin"

// TraceIDKey はgin.Contextにトレース（アクティビティ）IDを格納するキー。
const TraceIDKey = "trace_id"

// WriteError はProblemDetailをGinレスポンスとして書き込む。
// コンテキストにトレースIDがあればinstanceに設定する。
func WriteError(c *gin.Context, problem *ProblemDetail) {
	if traceID := c.GetString(TraceIDKey); traceID != "" && problem.Instance == "" {
		problem.Instance = traceID
	}
	c.Header("Content-Type", ContentType)
	c.JSON(problem.Status, problem)
}

// AbortWithError はProblemDetailをGinレスポンスとして書き込み、リクエスト処理を中断する。
func AbortWithError(c *gin.Context, problem *ProblemDetail) {
	if traceID := c.GetString(TraceIDKey); traceID != "" && problem.Instance == "" {
		problem.Instance = traceID
	}
	c.Header("Content-Type", ContentType)
	c.AbortWithStatusJSON(problem.Status, problem)
}
