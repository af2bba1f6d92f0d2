package fileHandler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"document-service/internal/service/fileService"
	"document-service/pkg/logger"
)

type FileHandler struct {
	fileSvc *fileService.FileService
}

func New(fileSvc *fileService.FileService) *FileHandler {
	return &FileHandler{fileSvc: fileSvc}
}

// Register mounts the /file routes on the given group.
func (h *FileHandler) Register(r *gin.RouterGroup) {
	r.POST("", h.Upload)
	r.POST("/create-folders", h.CreateFolders)
	r.POST("/foldersAndFilesByProgram", h.FoldersAndFilesByProgram)
	r.POST("/reconcile", h.Reconcile)
	r.DELETE("", h.Delete)
	r.GET("/file-types/:folderName", h.FileTypesByFolder)
}

// Upload handles POST /file: a multipart batch upload. Per-file failures are
// reported alongside the successes; only shared resolution failures reject
// the whole request.
func (h *FileHandler) Upload(c *gin.Context) {
	var form UploadForm
	if err := c.ShouldBind(&form); err != nil {
		fail(c, http.StatusBadRequest, "invalid upload form", err.Error())
		return
	}
	if err := form.Validate(); err != nil {
		fail(c, http.StatusBadRequest, "invalid upload form", err.Error())
		return
	}

	mpForm, err := c.MultipartForm()
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid multipart request", err.Error())
		return
	}
	fileHeaders := mpForm.File["files"]
	if len(fileHeaders) == 0 {
		fail(c, http.StatusBadRequest, "no files provided")
		return
	}

	items := make([]fileService.UploadItem, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			fail(c, http.StatusBadRequest, fmt.Sprintf("cannot read file %q", fh.Filename), err.Error())
			return
		}
		defer f.Close()
		items = append(items, fileService.UploadItem{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Reader:      f,
		})
	}

	params := fileService.UploadParams{
		ProgramID:  mustUint(form.ProgramID),
		UserID:     mustUint(form.UserID),
		FileTypeID: mustUint(form.FileTypeID),
		FolderTree: form.FolderTree,
	}

	result, err := h.fileSvc.UploadFiles(c.Request.Context(), params, items)
	if err != nil {
		failFromError(c, err)
		return
	}

	logger.GetLogger(c.Request.Context()).Info("batch upload finished",
		zap.Uint64("programId", params.ProgramID),
		zap.Int("uploaded", len(result.Uploaded)),
		zap.Int("failed", len(result.Failures)),
	)

	if len(result.Uploaded) == 0 {
		reasons := make([]string, 0, len(result.Failures))
		for _, f := range result.Failures {
			reasons = append(reasons, fmt.Sprintf("%s: %s", f.Name, f.Reason))
		}
		fail(c, http.StatusBadRequest, "no file could be uploaded", reasons...)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "files uploaded",
		"files":   result.Uploaded,
		"errors":  result.Failures,
	})
}

// CreateFolders handles POST /file/create-folders.
func (h *FileHandler) CreateFolders(c *gin.Context) {
	var req CreateFoldersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	names, err := h.fileSvc.CreateFolders(c.Request.Context(), req.CompanyID, req.ProgramID)
	if err != nil {
		failFromError(c, err)
		return
	}

	log := "created default directories for programs:"
	for _, name := range names {
		log += fmt.Sprintf(" %q", name)
	}
	ok(c, http.StatusCreated, "folders created", []any{}, log)
}

// FoldersAndFilesByProgram handles POST /file/foldersAndFilesByProgram.
func (h *FileHandler) FoldersAndFilesByProgram(c *gin.Context) {
	var req FoldersByProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	folders, err := h.fileSvc.ListAllFolders(c.Request.Context(), req.ProgramID, req.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, "folders and files loaded", folders)
}

// Delete handles DELETE /file. The two delete phases are independent; the
// response details which of them happened.
func (h *FileHandler) Delete(c *gin.Context) {
	var req DeleteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.fileSvc.DeleteByKey(c.Request.Context(), req.S3Key, req.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, result.Message, result,
		fmt.Sprintf("delete attempted for s3 key %q", req.S3Key))
}

// FileTypesByFolder handles GET /file/file-types/:folderName.
func (h *FileHandler) FileTypesByFolder(c *gin.Context) {
	folderName := c.Param("folderName")

	types, err := h.fileSvc.FileTypesByFolder(c.Request.Context(), folderName)
	if err != nil {
		failFromError(c, err)
		return
	}

	out := make([]gin.H, 0, len(types))
	for _, t := range types {
		out = append(out, gin.H{
			"id":          t.ID,
			"name":        t.Name,
			"description": t.Description,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Reconcile handles POST /file/reconcile: reports storage/database
// divergence for a program without repairing it.
func (h *FileHandler) Reconcile(c *gin.Context) {
	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	report, err := h.fileSvc.Reconcile(c.Request.Context(), req.ProgramID)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, "reconciliation finished", report)
}

// mustUint converts a digits-only validated field.
func mustUint(s string) uint64 {
	v, _ := strconv.ParseUint(s, 10, 64)
	return v
}
