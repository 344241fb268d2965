package handlers

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"gofermarket/internal/models"
)

const maxImageSize = 5 << 20

// UploadImage stores an item image and returns its durable URL. The ledger
// and the listing documents only ever carry the URL string.
func UploadImage(uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /uploads"
		defer handlePanic(c, route)

		file, err := c.FormFile("image")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "image file is required")
			return
		}

		relPath, err := saveImage(uploadDir, file)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		c.JSON(http.StatusCreated, gin.H{"url": "/public/" + relPath})
	}
}

// UpdateAvatar replaces the authenticated user's avatar. A previous locally
// hosted avatar file is removed after the swap.
func UpdateAvatar(db *mongo.Database, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /user/avatar"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "image file is required")
			return
		}

		relPath, err := saveImage(uploadDir, file)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		avatarURL := "/public/" + relPath

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		_, err = db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$set": bson.M{
				"avatar":    avatarURL,
				"updatedAt": time.Now(),
			},
		})
		if err != nil {
			log.Println("[UPLOAD] [ERROR] avatar update failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if old := strings.TrimPrefix(user.Avatar, "/public/"); old != user.Avatar {
			if err := safeDeleteUpload(uploadDir, old); err != nil {
				log.Println("[UPLOAD] [WARN] old avatar not removed:", err)
			}
		}

		log.Println("[UPLOAD] [INFO] avatar updated for user:", userID.Hex())
		c.JSON(http.StatusOK, gin.H{"avatar": avatarURL})
	}
}

func saveImage(uploadDir string, file *multipart.FileHeader) (string, error) {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if extension == "" {
		return "", fmt.Errorf("image file extension is required")
	}
	allowedExtensions := map[string]struct{}{
		".jpg":  {},
		".jpeg": {},
		".png":  {},
		".webp": {},
	}
	if _, ok := allowedExtensions[extension]; !ok {
		return "", fmt.Errorf("unsupported image type: %s", extension)
	}
	if file.Size > maxImageSize {
		return "", fmt.Errorf("image file too large (max 5MB)")
	}

	filename := primitive.NewObjectID().Hex() + extension

	dir := filepath.Join(uploadDir, "uploads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[UPLOAD] saveImage: failed to create directory %s: %v", dir, err)
		return "", err
	}

	fullPath := filepath.Join(dir, filename)

	out, err := os.Create(fullPath)
	if err != nil {
		log.Printf("[UPLOAD] saveImage: failed to create file %s: %v", fullPath, err)
		return "", err
	}
	defer out.Close()

	in, err := file.Open()
	if err != nil {
		log.Printf("[UPLOAD] saveImage: failed to open upload %s: %v", file.Filename, err)
		return "", err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		log.Printf("[UPLOAD] saveImage: failed to save file %s: %v", fullPath, err)
		return "", err
	}

	return filepath.ToSlash(filepath.Join("uploads", filename)), nil
}
