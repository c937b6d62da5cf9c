package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"recipehub_backend/internal/config"

	gcs "cloud.google.com/go/storage"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscredentials "github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	s3fs "github.com/looplj/afero-s3"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/afero/gcsfs"
	"golang.org/x/oauth2/google"
	googleoption "google.golang.org/api/option"
)

// Disks - реестр дисков по имени
type Disks struct {
	disks       map[string]Storage
	defaultDisk string
}

// NewDisks строит все диски из конфига
func NewDisks(ctx context.Context, cfgs map[string]config.DiskConfig, defaultDisk string) (*Disks, error) {
	d := &Disks{disks: make(map[string]Storage, len(cfgs)), defaultDisk: defaultDisk}
	for name, cfg := range cfgs {
		disk, err := New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("disk %q: %w", name, err)
		}
		d.disks[name] = disk
	}
	if _, ok := d.disks[defaultDisk]; !ok {
		return nil, fmt.Errorf("default disk %q is not configured", defaultDisk)
	}
	return d, nil
}

// NewDisksFrom - реестр из готовых дисков (тесты)
func NewDisksFrom(defaultDisk string, disks map[string]Storage) *Disks {
	return &Disks{disks: disks, defaultDisk: defaultDisk}
}

func (d *Disks) Disk(name string) (Storage, error) {
	if name == "" {
		name = d.defaultDisk
	}
	disk, ok := d.disks[name]
	if !ok {
		return nil, fmt.Errorf("unknown storage disk: %s", name)
	}
	return disk, nil
}

func (d *Disks) Default() string {
	return d.defaultDisk
}

// New создаёт диск по типу
func New(ctx context.Context, cfg config.DiskConfig) (*FsStorage, error) {
	switch cfg.Type {
	case TypeLocal:
		return NewLocal(cfg)
	case TypeMemory:
		return NewMemory(cfg.BaseURL), nil
	case TypeS3:
		return NewS3(ctx, cfg)
	case TypeGCS:
		return NewGCS(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

func NewLocal(cfg config.DiskConfig) (*FsStorage, error) {
	if cfg.BasePath == "" {
		cfg.BasePath = "./storage/app"
	}
	if err := os.MkdirAll(cfg.BasePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return NewFsStorage(afero.NewBasePathFs(afero.NewOsFs(), cfg.BasePath), TypeLocal, cfg.BaseURL), nil
}

func NewMemory(baseURL string) *FsStorage {
	return NewFsStorage(afero.NewMemMapFs(), TypeMemory, baseURL)
}

// NewS3 - S3 или совместимое хранилище (R2, MinIO) через afero-s3
func NewS3(ctx context.Context, cfg config.DiskConfig) (*FsStorage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 disk requires bucket")
	}
	credProvider := awscredentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(lo.Ternary(cfg.Region != "", cfg.Region, "auto")),
		awsconfig.WithCredentialsProvider(credProvider),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = lo.ToPtr(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	fs := afero.NewCacheOnReadFs(s3fs.NewFsFromClient(cfg.Bucket, client), afero.NewMemMapFs(), 5*time.Minute)
	return NewFsStorage(fs, TypeS3, cfg.BaseURL), nil
}

// NewGCS - Google Cloud Storage через afero gcsfs
func NewGCS(ctx context.Context, cfg config.DiskConfig) (*FsStorage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("gcs disk requires bucket")
	}
	creds, err := google.CredentialsFromJSON(ctx, []byte(cfg.Credential), gcs.ScopeFullControl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GCP credentials: %w", err)
	}

	client, err := gcs.NewClient(ctx, googleoption.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	fs, err := gcsfs.NewGcsFSFromClient(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS filesystem: %w", err)
	}

	return NewFsStorage(afero.NewBasePathFs(fs, cfg.Bucket), TypeGCS, cfg.BaseURL), nil
}
