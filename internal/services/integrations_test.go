// internal/services/integrations_test.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazarco/backend/internal/config"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestDetectImageType(t *testing.T) {
	contentType, err := DetectImageType(pngHeader)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	_, err = DetectImageType([]byte("%PDF-1.4 not an image"))
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = DetectImageType(nil)
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = DetectImageType(append(pngHeader, make([]byte, MaxImageSize)...))
	assert.ErrorIs(t, err, ErrInvalidImage)
}

type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	err   error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	f.input = input
	return &s3.PutObjectOutput{}, f.err
}

func TestStorageServiceUpload(t *testing.T) {
	client := &fakeS3{}
	svc := &StorageService{
		s3Client: client,
		config:   config.AWSConfig{Region: "eu-west-1", S3Bucket: "bazarco", ImagePrefix: "products"},
	}
	require.True(t, svc.Configured())

	url, err := svc.UploadImage(context.Background(), pngHeader)
	require.NoError(t, err)

	key := aws.StringValue(client.input.Key)
	assert.True(t, strings.HasPrefix(key, "products/"), key)
	assert.True(t, strings.HasSuffix(key, ".png"), key)
	assert.Equal(t, "image/png", aws.StringValue(client.input.ContentType))
	assert.Equal(t, "https://bazarco.s3.eu-west-1.amazonaws.com/"+key, url)

	svc.config.CloudFrontURL = "https://cdn.bazarco.test"
	url, err = svc.UploadImage(context.Background(), pngHeader)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.bazarco.test/products/"), url)

	client.err = errors.New("access denied")
	_, err = svc.UploadImage(context.Background(), pngHeader)
	assert.Error(t, err)
}

func TestStorageServiceUnconfigured(t *testing.T) {
	svc, err := NewStorageService(config.AWSConfig{})
	require.NoError(t, err)
	assert.False(t, svc.Configured())

	_, err = svc.UploadImage(context.Background(), pngHeader)
	assert.Error(t, err)
}

func newShopifyTestServer(t *testing.T, handler http.HandlerFunc) *ShopifyService {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &ShopifyService{
		client:      server.Client(),
		endpoint:    server.URL,
		accessToken: "shpat_test",
	}
}

func TestShopifyCreateProduct(t *testing.T) {
	var captured map[string]interface{}
	svc := newShopifyTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "shpat_test", r.Header.Get("X-Shopify-Access-Token"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.Write([]byte(`{"data":{"productCreate":{"product":{"id":"gid://shopify/Product/42"},"userErrors":[]}}}`))
	})

	id, ok := svc.CreateProduct(context.Background(), "Lamp", "<b>bright</b>")
	assert.True(t, ok)
	assert.Equal(t, "gid://shopify/Product/42", id)

	product := captured["variables"].(map[string]interface{})["product"].(map[string]interface{})
	assert.Equal(t, "<p>&lt;b&gt;bright&lt;/b&gt;</p>", product["descriptionHtml"])
}

func TestShopifyFailuresReturnNoReference(t *testing.T) {
	responses := []string{
		`{"errors":[{"message":"throttled"}]}`,
		`{"data":{"productCreate":{"product":null,"userErrors":[{"field":["title"],"message":"blank"}]}}}`,
		`not json`,
	}
	for _, body := range responses {
		body := body
		svc := newShopifyTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})
		id, ok := svc.CreateProduct(context.Background(), "Lamp", "")
		assert.False(t, ok, body)
		assert.Empty(t, id)
	}

	svc := newShopifyTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	_, ok := svc.CreateProduct(context.Background(), "Lamp", "")
	assert.False(t, ok)

	_, ok = NewShopifyService(config.ShopifyConfig{}).CreateProduct(context.Background(), "Lamp", "")
	assert.False(t, ok)
}

func TestNotificationServiceSendsHTML(t *testing.T) {
	svc := NewNotificationService(config.EmailConfig{
		SMTPHost:  "smtp.example.com",
		SMTPPort:  "587",
		FromEmail: "hello@bazarco.test",
		FromName:  "BazarCo",
	})

	var gotAddr string
	var gotMsg []byte
	svc.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotMsg = msg
		return nil
	}

	require.NoError(t, svc.SendPasswordResetEmail(context.Background(), "ada@example.com", "https://bazarco.test/reset-password?token=abc"))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.True(t, bytes.Contains(gotMsg, []byte("Subject: BazarCo - Reset your password")))
	assert.True(t, bytes.Contains(gotMsg, []byte("token=abc")))
	assert.True(t, bytes.Contains(gotMsg, []byte("From: BazarCo <hello@bazarco.test>")))

	svc.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("relay denied")
	}
	assert.Error(t, svc.SendReminderEmail(context.Background(), "ada@example.com"))
}

func TestNotificationServiceUnconfiguredSkips(t *testing.T) {
	svc := NewNotificationService(config.EmailConfig{})
	called := false
	svc.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	}

	assert.NoError(t, svc.SendNotifyEmail(context.Background(), "ada@example.com"))
	assert.False(t, called)
}
