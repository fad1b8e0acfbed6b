package events

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/eventfile/pkg/middleware"
)

// Server はイベントサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// service はイベントのCRUDルールを実装するサービス。
	service *Service
}

// NewServer は新しいイベントサーバーを生成する。
func NewServer(port string, store Store) (*Server, error) {
	if store == nil {
		return nil, errors.New("ストアが指定されていません")
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())

	// ALLOWED_ORIGINSが設定されている場合のみCORSを許可する
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		router.Use(middleware.CORS(strings.Split(origins, ",")))
	}

	s := &Server{
		router:  router,
		port:    port,
		service: NewService(store),
	}
	s.setupRoutes()

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// Router はテスト用にルーターを返す。
func (s *Server) Router() *gin.Engine {
	return s.router
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		events := api.Group("/events")
		{
			// イベント作成
			events.POST("", s.handleCreate())
			// イベント一覧取得
			events.GET("", s.handleList())
			// イベント部分更新
			events.PUT("/:id", s.handleUpdate())
			// イベント削除
			events.DELETE("/:id", s.handleDelete())
		}
	}

	// サービス識別メッセージ
	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "イベント管理APIサーバーが稼働しています"})
	})

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "eventfile"})
	})
}

// createEventRequest はイベント作成リクエストのJSON構造。
// 必須フィールドの検証はサービス側で行う。
type createEventRequest struct {
	// EventName はイベント名。
	EventName string `json:"eventName"`
	// Date は開催日。
	Date string `json:"date"`
	// Location は開催場所。
	Location string `json:"location"`
	// Description は説明。
	Description string `json:"description"`
	// Tags はタグの列。
	Tags []string `json:"tags"`
}

// updateEventRequest はイベント部分更新リクエストのJSON構造。
// nilのフィールドは「指定なし」として扱う。eventNameとidは変更禁止。
type updateEventRequest struct {
	// EventName は変更禁止フィールド。検出のためだけに受け取る。
	EventName *string `json:"eventName"`
	// ID は変更禁止フィールド。検出のためだけに受け取る。
	ID *string `json:"id"`
	// Date は開催日の新しい値。
	Date *string `json:"date"`
	// Location は開催場所の新しい値。
	Location *string `json:"location"`
	// Description は説明の新しい値。
	Description *string `json:"description"`
	// Tags はタグ列の新しい値。
	Tags *[]string `json:"tags"`
}

// handleCreate はイベント作成を処理するハンドラを返す。
func (s *Server) handleCreate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		created, err := s.service.Create(CreateInput{
			EventName:   req.EventName,
			Date:        req.Date,
			Location:    req.Location,
			Description: req.Description,
			Tags:        req.Tags,
		})
		if err != nil {
			s.respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, created)
	}
}

// handleList はイベント一覧取得を処理するハンドラを返す。
func (s *Server) handleList() gin.HandlerFunc {
	return func(c *gin.Context) {
		evts, err := s.service.List()
		if err != nil {
			s.respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, evts)
	}
}

// handleUpdate はイベント部分更新を処理するハンドラを返す。
func (s *Server) handleUpdate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		updated, err := s.service.Update(c.Param("id"), UpdatePatch{
			EventName:   req.EventName,
			ID:          req.ID,
			Date:        req.Date,
			Location:    req.Location,
			Description: req.Description,
			Tags:        req.Tags,
		})
		if err != nil {
			s.respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// handleDelete はイベント削除を処理するハンドラを返す。
func (s *Server) handleDelete() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.service.Delete(c.Param("id")); err != nil {
			s.respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "イベントを削除しました"})
	}
}

// respondError はサービス層のエラーをHTTPステータスに変換して返す。
// 内部エラーの詳細はログに記録し、呼び出し側には汎用メッセージのみを返す。
func (s *Server) respondError(c *gin.Context, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Reason})
	case errors.Is(err, ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": ErrDuplicate.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
	default:
		log.Printf("イベント操作エラー: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "内部サーバーエラーが発生しました"})
	}
}
