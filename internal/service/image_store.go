package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
	"github.com/pkg/errors"

	"aiacademy/internal/config"
)

// ImageStore hosts profile pictures
type ImageStore interface {
	// Upload stores the image under publicID and returns its https URL
	Upload(ctx context.Context, publicID, filename string, r io.Reader) (string, error)
}

type cloudinaryResult struct {
	SecureURL string `json:"secure_url"`
}

type cloudinaryError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type cloudinaryStore struct {
	cfg    *config.CloudinaryConfig
	client *req.Client
	now    func() time.Time
}

// NewCloudinaryStore uploads with signed requests to the Cloudinary upload API
func NewCloudinaryStore(cfg *config.CloudinaryConfig) ImageStore {
	client := req.C().
		SetTimeout(30 * time.Second).
		SetJsonUnmarshal(json.Unmarshal)
	return &cloudinaryStore{cfg: cfg, client: client, now: time.Now}
}

func (c *cloudinaryStore) Upload(ctx context.Context, publicID, filename string, r io.Reader) (string, error) {
	if !c.cfg.IsEnabled() {
		return "", ErrUploadDisabled
	}

	params := map[string]string{
		"folder":    c.cfg.Folder,
		"overwrite": "true",
		"public_id": publicID,
		"timestamp": strconv.FormatInt(c.now().Unix(), 10),
	}
	form := map[string]string{
		"api_key":   c.cfg.APIKey,
		"signature": signParams(params, c.cfg.APISecret),
	}
	for k, v := range params {
		form[k] = v
	}

	var ok cloudinaryResult
	var fail cloudinaryError
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(form).
		SetFileReader("file", filename, r).
		SetSuccessResult(&ok).
		SetErrorResult(&fail).
		Post(c.cfg.UploadURL())
	if err != nil {
		return "", errors.Wrap(err, "cloudinary upload")
	}
	if resp.IsErrorState() {
		return "", errors.Errorf("cloudinary upload: %d %s", resp.GetStatusCode(), fail.Error.Message)
	}
	if ok.SecureURL == "" {
		return "", errors.New("cloudinary upload: no secure_url in response")
	}
	return ok.SecureURL, nil
}

// signParams is the Cloudinary request signature: sha1 of the sorted
// key=value pairs joined by '&', followed by the API secret.
func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + params[k]
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
