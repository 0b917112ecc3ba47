package sandbox

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/picoview/errors"
	"github.com/kbukum/picoview/logger"
	"github.com/kbukum/picoview/server"
	"github.com/kbukum/picoview/topology"
	"github.com/kbukum/picoview/validation"
)

type handlers struct {
	store *Store
	log   *logger.Logger
}

// RegisterRoutes mounts the pico backend API under /api.
func RegisterRoutes(r gin.IRouter, store *Store, log *logger.Logger) {
	h := &handlers{store: store, log: log}

	api := r.Group("/api")
	api.GET("/nodes", h.listNodes)
	api.GET("/nodes/:name", h.getNode)

	containers := api.Group("/containers")
	containers.GET("", h.listPods)
	containers.POST("", h.createPod)
	containers.GET("/:name", h.getPod)
	containers.DELETE("/:name", h.deletePod)
	containers.GET("/:name/logs", h.podLogs)
	containers.PUT("/:name/:action", h.podAction)
}

func (h *handlers) listNodes(c *gin.Context) {
	nodes := h.store.Nodes()
	if len(nodes) == 0 {
		server.RespondWithError(c, apperrors.NotFound("node", ""))
		return
	}
	server.RespondOK(c, nodes)
}

func (h *handlers) getNode(c *gin.Context) {
	node, err := h.store.Node(c.Param("name"))
	h.respond(c, node, err)
}

func (h *handlers) listPods(c *gin.Context) {
	server.RespondOK(c, h.store.Pods())
}

func (h *handlers) getPod(c *gin.Context) {
	pod, err := h.store.Pod(c.Param("name"))
	h.respond(c, pod, err)
}

func (h *handlers) createPod(c *gin.Context) {
	var spec topology.PodSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("body", err.Error()).WithCause(err))
		return
	}
	if err := validation.Validate(spec); err != nil {
		server.RespondWithError(c, err)
		return
	}

	pod, err := h.store.CreatePod(spec)
	if err != nil {
		h.respond(c, nil, err)
		return
	}
	h.log.WithContext(c.Request.Context()).Info("pod created", logger.Fields(
		logger.FieldPod, pod.Name,
		"image", pod.Image,
	))
	server.RespondCreated(c, pod)
}

func (h *handlers) deletePod(c *gin.Context) {
	pod, err := h.store.DeletePod(c.Param("name"))
	if err == nil {
		h.log.WithContext(c.Request.Context()).Info("pod deleted", logger.Fields(logger.FieldPod, pod.Name))
	}
	h.respond(c, pod, err)
}

func (h *handlers) podLogs(c *gin.Context) {
	lines, err := h.store.Logs(c.Param("name"))
	h.respond(c, lines, err)
}

func (h *handlers) podAction(c *gin.Context) {
	name := c.Param("name")

	var (
		pod topology.Pod
		err error
	)
	switch action := c.Param("action"); action {
	case "start":
		pod, err = h.store.StartPod(name)
	case "stop":
		pod, err = h.store.StopPod(name)
	case "restart":
		pod, err = h.store.RestartPod(name)
	default:
		err = apperrors.NotFound("action", action)
	}
	h.respond(c, pod, err)
}

func (h *handlers) respond(c *gin.Context, body any, err error) {
	if err != nil {
		h.log.WithContext(c.Request.Context()).Debug("request rejected", logger.Fields(
			logger.FieldURL, c.Request.URL.Path,
			logger.FieldError, err.Error(),
		))
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, body)
}
