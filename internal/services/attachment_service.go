package services

import (
	"context"
	"fmt"
	"path"
	"slices"
	"strings"
	"time"
	"unicode"

	"recipehub_backend/internal/ids"
	"recipehub_backend/internal/imageprocessor"
	"recipehub_backend/internal/logger"
	"recipehub_backend/internal/metrics"
	"recipehub_backend/internal/models"
	"recipehub_backend/internal/repositories"
	"recipehub_backend/internal/services/dto"
	"recipehub_backend/internal/storage"
	"recipehub_backend/pkg/apperrors"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

// TrashDir - префикс, куда файлы переносятся на время каскадного удаления
const TrashDir = ".trash"

// ============================================
// ATTACHMENT SERVICE
// ============================================

// AttachmentService привязывает файлы к любой сущности через OwnerRef.
// Не знает о конкретных типах владельцев.
type AttachmentService struct {
	repo  *repositories.AttachmentRepository
	disks *storage.Disks
	now   func() time.Time
}

func NewAttachmentService(repo *repositories.AttachmentRepository, disks *storage.Disks) *AttachmentService {
	return &AttachmentService{repo: repo, disks: disks, now: time.Now}
}

// Attach сохраняет файл и создает запись.
// Файл не записан => записи нет; запись не создана => файл удаляется.
func (s *AttachmentService) Attach(
	ctx context.Context,
	db *gorm.DB,
	wc repositories.WriteContext,
	file dto.UploadFile,
	owner models.AttachmentOwner,
	typeTag string,
	target dto.StorageTarget,
) (*models.Attachment, error) {
	diskName := lo.Ternary(target.Disk != "", target.Disk, s.disks.Default())
	disk, err := s.disks.Disk(diskName)
	if err != nil {
		return nil, apperrors.StorageFailure(err, "put")
	}
	if typeTag == "" {
		typeTag = models.AttachmentTypeFile
	}

	fileName := s.FileName(file.Name)
	filePath := path.Join(target.Directory, fileName)

	if err := s.put(ctx, disk, filePath, file); err != nil {
		metrics.StorageError("put")
		logger.CtxWithError(ctx, "Failed to store attachment file", err, "disk", diskName, "path", filePath)
		return nil, apperrors.StorageFailure(err, "put")
	}

	ref := owner.AttachmentOwner()
	attachment := &models.Attachment{
		OwnerType:    ref.Type,
		OwnerID:      ref.ID,
		OriginalName: file.Name,
		FileName:     fileName,
		Disk:         diskName,
		Path:         filePath,
		MimeType:     file.MimeType,
		Size:         file.Size,
		Type:         typeTag,
		Metadata:     s.metadata(file),
	}

	if err := s.repo.Create(db, wc, attachment); err != nil {
		if delErr := disk.Delete(ctx, filePath); delErr != nil {
			metrics.StorageError("delete")
			logger.CtxWithError(ctx, "CRITICAL: failed to remove file after record failure", delErr, "path", filePath)
		}
		return nil, err
	}

	metrics.AttachmentStored(diskName)
	logger.CtxDebug(ctx, "Attachment stored", "attachment_id", attachment.ID, "owner_type", ref.Type, "owner_id", ref.ID)
	return attachment, nil
}

// AttachMany - независимый Attach на каждый файл.
// Успешные возвращаются всегда, ошибки собираются в одну.
func (s *AttachmentService) AttachMany(
	ctx context.Context,
	db *gorm.DB,
	wc repositories.WriteContext,
	files []dto.UploadFile,
	owner models.AttachmentOwner,
	typeTag string,
	target dto.StorageTarget,
) ([]*models.Attachment, error) {
	var result *multierror.Error
	attachments := make([]*models.Attachment, 0, len(files))

	for _, file := range files {
		attachment, err := s.Attach(ctx, db, wc, file, owner, typeTag, target)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", file.Name, err))
			continue
		}
		attachments = append(attachments, attachment)
	}

	return attachments, result.ErrorOrNil()
}

// Replace удаляет все вложения typeTag владельца и прикрепляет новые.
// Так "картинка рецепта" ведет себя как одно поле.
func (s *AttachmentService) Replace(
	ctx context.Context,
	db *gorm.DB,
	wc repositories.WriteContext,
	owner models.AttachmentOwner,
	typeTag string,
	files []dto.UploadFile,
	target dto.StorageTarget,
) ([]*models.Attachment, error) {
	existing, err := s.repo.ForOwner(db, owner.AttachmentOwner(), typeTag)
	if err != nil {
		return nil, err
	}

	for i := range existing {
		if err := s.Delete(ctx, db, &existing[i]); err != nil {
			return nil, err
		}
	}

	return s.AttachMany(ctx, db, wc, files, owner, typeTag, target)
}

// Delete удаляет файл и запись. Ошибка удаления файла логируется,
// запись удаляется в любом случае.
func (s *AttachmentService) Delete(ctx context.Context, db *gorm.DB, attachment *models.Attachment) error {
	disk, err := s.disks.Disk(attachment.Disk)
	if err == nil {
		err = disk.Delete(ctx, attachment.Path)
	}
	if err != nil {
		metrics.StorageError("delete")
		logger.CtxWithError(ctx, "Failed to delete attachment file", err,
			"attachment_id", attachment.ID, "disk", attachment.Disk, "path", attachment.Path)
	}

	return s.repo.Delete(db, attachment.ID)
}

// DeleteMany возвращает число реально удаленных вложений
func (s *AttachmentService) DeleteMany(ctx context.Context, db *gorm.DB, attachmentIDs []uint) (int, error) {
	if len(attachmentIDs) == 0 {
		return 0, nil
	}

	attachments, err := s.repo.List(db, repositories.Filter{
		InSets: repositories.InSets{"id": lo.ToAnySlice(attachmentIDs)},
	}, repositories.ListOptions{OrderBy: "id", OrderDir: repositories.SortAsc})
	if err != nil {
		return 0, err
	}

	var result *multierror.Error
	deleted := 0
	for i := range attachments {
		if err := s.Delete(ctx, db, &attachments[i]); err != nil {
			result = multierror.Append(result, fmt.Errorf("attachment %d: %w", attachments[i].ID, err))
			continue
		}
		deleted++
	}
	return deleted, result.ErrorOrNil()
}

// ============================================
// КАСКАДНОЕ УДАЛЕНИЕ
// ============================================

type stagedFile struct {
	disk     storage.Storage
	original string
	trash    string
}

// DeleteOwnerCascade удаляет владельца вместе со всеми вложениями: все или ничего.
//  1. файлы переносятся в .trash/<ulid>/...; отсутствующие пропускаются
//  2. любой сбой переноса => файлы возвращаются, БД не трогается, PARTIAL_CASCADE_FAILURE
//  3. в одной транзакции удаляются записи вложений и сам владелец; сбой => файлы возвращаются
//  4. корзина очищается, ошибки только логируются
func (s *AttachmentService) DeleteOwnerCascade(
	ctx context.Context,
	db *gorm.DB,
	owner models.AttachmentOwner,
	deleteOwner func(tx *gorm.DB) error,
) error {
	ref := owner.AttachmentOwner()
	attachments, err := s.repo.ForOwner(db, ref, "")
	if err != nil {
		return err
	}

	batch := ids.New()
	staged := make([]stagedFile, 0, len(attachments))
	failed := 0
	var stageErr *multierror.Error

	for _, a := range attachments {
		disk, err := s.disks.Disk(a.Disk)
		if err != nil {
			failed++
			stageErr = multierror.Append(stageErr, err)
			continue
		}

		trash := path.Join(TrashDir, batch, a.Path)
		if err := disk.Move(ctx, a.Path, trash); err != nil {
			if storage.IsNotExist(err) {
				continue
			}
			failed++
			stageErr = multierror.Append(stageErr, err)
			metrics.StorageError("move")
			logger.CtxWithError(ctx, "Failed to stage attachment file", err, "attachment_id", a.ID, "path", a.Path)
			continue
		}
		staged = append(staged, stagedFile{disk: disk, original: a.Path, trash: trash})
	}

	if failed > 0 {
		s.restore(ctx, staged)
		metrics.CascadeFailure()
		logger.CtxWarn(ctx, "Owner delete aborted", "owner_type", ref.Type, "owner_id", ref.ID,
			"total", len(attachments), "failed", failed)
		return apperrors.PartialCascadeFailure(stageErr.ErrorOrNil(), len(attachments), failed)
	}

	attachmentIDs := lo.Map(attachments, func(a models.Attachment, _ int) uint { return a.ID })
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.repo.DeleteWhereIDIn(tx, attachmentIDs); err != nil {
			return err
		}
		if deleteOwner == nil {
			return nil
		}
		return deleteOwner(tx)
	})
	if err != nil {
		s.restore(ctx, staged)
		return err
	}

	for _, f := range staged {
		if err := f.disk.Delete(ctx, f.trash); err != nil {
			metrics.StorageError("purge")
			logger.CtxWithError(ctx, "Failed to purge staged file", err, "path", f.trash)
		}
	}

	logger.CtxInfo(ctx, "Owner deleted with attachments", "owner_type", ref.Type, "owner_id", ref.ID,
		"attachments", len(attachments))
	return nil
}

// restore возвращает перенесенные файлы на место
func (s *AttachmentService) restore(ctx context.Context, staged []stagedFile) {
	for _, f := range staged {
		if err := f.disk.Move(ctx, f.trash, f.original); err != nil {
			metrics.StorageError("restore")
			logger.CtxWithError(ctx, "CRITICAL: failed to restore staged file", err, "from", f.trash, "to", f.original)
		}
	}
}

// ============================================
// ЧТЕНИЕ И ВАЛИДАЦИЯ
// ============================================

// ForOwner - вложения владельца; пустой typeTag => все
func (s *AttachmentService) ForOwner(ctx context.Context, db *gorm.DB, owner models.AttachmentOwner, typeTag string) ([]models.Attachment, error) {
	return s.repo.ForOwner(db.WithContext(ctx), owner.AttachmentOwner(), typeTag)
}

// URL - публичный адрес файла; неизвестный диск => пустая строка
func (s *AttachmentService) URL(attachment *models.Attachment) string {
	disk, err := s.disks.Disk(attachment.Disk)
	if err != nil {
		return ""
	}
	return disk.URL(attachment.Path)
}

// Validate: размер не больше maxSizeBytes (<= 0 - без ограничения),
// MIME из allowedMimeTypes (пустой список - любой)
func (s *AttachmentService) Validate(file dto.UploadFile, allowedMimeTypes []string, maxSizeBytes int64) bool {
	if maxSizeBytes > 0 && file.Size > maxSizeBytes {
		return false
	}
	if len(allowedMimeTypes) > 0 && !slices.Contains(allowedMimeTypes, file.MimeType) {
		return false
	}
	return true
}

// ============================================
// ВСПОМОГАТЕЛЬНЫЕ МЕТОДЫ
// ============================================

// FileName: <slug>_<2006-01-02_15-04-05>_<ulid>.<ext>
func (s *AttachmentService) FileName(originalName string) string {
	now := s.now()
	ext := strings.ToLower(imageprocessor.Extension(originalName))
	base := strings.TrimSuffix(path.Base(strings.ReplaceAll(originalName, "\\", "/")), path.Ext(originalName))

	name := fmt.Sprintf("%s_%s_%s", slugify(base), now.Format("2006-01-02_15-04-05"), ids.NewAt(now))
	if ext != "" {
		name += "." + ext
	}
	return name
}

func (s *AttachmentService) put(ctx context.Context, disk storage.Storage, filePath string, file dto.UploadFile) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	return disk.Put(ctx, filePath, src, file.MimeType)
}

func (s *AttachmentService) metadata(file dto.UploadFile) map[string]any {
	if !strings.HasPrefix(file.MimeType, "image/") {
		return imageprocessor.ExtractMetadata(nil, file.Name, file.MimeType)
	}
	src, err := file.Open()
	if err != nil {
		return imageprocessor.ExtractMetadata(nil, file.Name, file.MimeType)
	}
	defer src.Close()
	return imageprocessor.ExtractMetadata(src, file.Name, file.MimeType)
}

// slugify: диакритика снимается, все кроме букв и цифр => "-"
func slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(plain) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "file"
	}
	return slug
}
