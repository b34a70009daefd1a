package repository

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"rehearsal-room-api/core/config"
	"rehearsal-room-api/core/constants"
	"rehearsal-room-api/core/errors"
	"rehearsal-room-api/core/logger"
	"rehearsal-room-api/modules/reservation/entity"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3API is the slice of the S3 client the ledger uses.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Ledger keeps the ledger as one CSV object in an S3-compatible store.
// There is no lock here: Save reads the object's current ETag and writes
// conditionally against it, so a concurrent writer makes the write fail
// rather than get silently overwritten. On a stale token the write is
// retried exactly once against the fresh token; a second rejection is
// surfaced to the caller.
type S3Ledger struct {
	client      S3API
	bucket      string
	key         string
	callTimeout time.Duration
}

func NewS3Ledger(cfg config.S3Config) (*S3Ledger, error) {
	opts := s3.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	logger.Info("S3Ledger:New", "bucket", cfg.Bucket, "key", cfg.Key, "region", cfg.Region)
	return &S3Ledger{
		client:      s3.New(opts),
		bucket:      cfg.Bucket,
		key:         cfg.Key,
		callTimeout: constants.DefaultCallTimeout,
	}, nil
}

func (l *S3Ledger) Load(ctx context.Context) ([]entity.Reservation, error) {
	reservations, _, err := l.fetch(ctx)
	return reservations, err
}

func (l *S3Ledger) Save(ctx context.Context, reservations []entity.Reservation) error {
	data, err := encodeLedger(reservations)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to encode ledger", err)
	}

	// Conditional write against the version observed right now.
	_, etag, err := l.fetch(ctx)
	if err != nil {
		return err
	}

	if err := l.putConditional(ctx, data, etag); err != nil {
		if !isPreconditionFailed(err) {
			return errors.NewAppError(errors.ErrInternalServer, "failed to write ledger object", err)
		}

		// Someone else wrote first. Refresh the token and retry once; a
		// second rejection means sustained contention and is reported, not
		// retried forever.
		logger.Warn("S3Ledger:Save:StaleToken", "bucket", l.bucket, "key", l.key)
		_, etag, err = l.fetch(ctx)
		if err != nil {
			return err
		}
		if err := l.putConditional(ctx, data, etag); err != nil {
			if isPreconditionFailed(err) {
				return errors.NewAppError(errors.ErrStoreConflict, "ledger changed concurrently, try again", err)
			}
			return errors.NewAppError(errors.ErrInternalServer, "failed to write ledger object", err)
		}
	}

	// The write succeeded, but a store serving stale content would mean
	// silent data loss. Re-read and verify the record count before
	// reporting success.
	current, _, err := l.fetch(ctx)
	if err != nil {
		return err
	}
	if len(current) != len(reservations) {
		logger.Error("S3Ledger:Save:CountMismatch", "wrote", len(reservations), "read", len(current))
		return errors.NewAppError(errors.ErrStoreIntegrity,
			fmt.Sprintf("ledger holds %d records after writing %d", len(current), len(reservations)), nil)
	}
	return nil
}

// fetch returns the current reservations and the object's version token.
// An absent object is an empty ledger with a nil token, not an error.
func (l *S3Ledger) fetch(ctx context.Context) ([]entity.Reservation, *string, error) {
	callCtx, cancel := context.WithTimeout(ctx, l.callTimeout)
	defer cancel()

	out, err := l.client.GetObject(callCtx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(l.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if stderrors.As(err, &noKey) {
			return nil, nil, nil
		}
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, nil, errors.NewAppError(errors.ErrStoreTimeout, "ledger fetch timed out", err)
		}
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "failed to fetch ledger object", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "failed to read ledger object", err)
	}
	return decodeLedger(data), out.ETag, nil
}

func (l *S3Ledger) putConditional(ctx context.Context, data []byte, etag *string) error {
	callCtx, cancel := context.WithTimeout(ctx, l.callTimeout)
	defer cancel()

	in := &s3.PutObjectInput{
		Bucket:      aws.String(l.bucket),
		Key:         aws.String(l.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/csv"),
	}
	if etag != nil {
		in.IfMatch = etag
	} else {
		// Object must still be absent; a racing creator trips this too.
		in.IfNoneMatch = aws.String("*")
	}

	_, err := l.client.PutObject(callCtx, in)
	return err
}

func isPreconditionFailed(err error) bool {
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "PreconditionFailed", "ConditionalRequestConflict":
			return true
		}
	}
	return false
}
