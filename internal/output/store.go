package output

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Раскладка выходного дерева относительно корня.
const (
	DefaultRoot = "OUTPUT"
	BuildDir    = "building_app"
	AppFilesDir = "APP_Files"
	BuildFile   = "build.txt"
	ModelsFile  = "models.py"
	FormsFile   = "forms.py"
	ViewsFile   = "views.py"
	URLsFile    = "urls.py"
	dirPerm     = 0o755
	filePerm    = 0o644
)

// AppDir — APP_Files/<app>
func AppDir(app string) string {
	return filepath.Join(AppFilesDir, app)
}

// Artifact — записанный файл
type Artifact struct {
	Path   string `json:"path"` // относительно корня
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
}

// Store — место, куда пишутся артефакты. Пути относительные.
type Store interface {
	MkdirAll(rel string) error
	WriteFile(rel, content string) (Artifact, error)
	Root() string
}

// LocalStore пишет в папку на диске. Синхронизации нет: параллельные
// запросы с одним app перетирают файлы друг друга (последний выигрывает).
type LocalStore struct {
	Dir string // например, "./OUTPUT"
}

func NewLocalStore(dir string) *LocalStore {
	if strings.TrimSpace(dir) == "" {
		dir = DefaultRoot
	}
	return &LocalStore{Dir: dir}
}

func (s *LocalStore) Root() string { return s.Dir }

func (s *LocalStore) full(rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes output root", rel)
	}
	return filepath.Join(s.Dir, clean), nil
}

// MkdirAll идемпотентен: существующая папка — не ошибка.
func (s *LocalStore) MkdirAll(rel string) error {
	p, err := s.full(rel)
	if err != nil {
		return err
	}
	return os.MkdirAll(p, dirPerm)
}

// WriteFile создаёт или перезаписывает файл целиком.
func (s *LocalStore) WriteFile(rel, content string) (Artifact, error) {
	p, err := s.full(rel)
	if err != nil {
		return Artifact{}, err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return Artifact{}, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(f, h), strings.NewReader(content))
	if err != nil {
		return Artifact{}, err
	}
	if err := f.Close(); err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Path:   filepath.ToSlash(filepath.Clean(rel)),
		Size:   n,
		SHA256: hex.EncodeToString(h.Sum(nil)),
	}, nil
}
