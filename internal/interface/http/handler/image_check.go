package handler

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/h2non/filetype"
)

// Разрешённые типы изображений объявления.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// checkImage сверяет расширение файла с реальным типом по магическим байтам.
// Возвращает сообщение для клиента и false, если файл не подходит.
func checkImage(filename string, src io.Reader) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExtensions[ext] {
		return fmt.Sprintf("неподдерживаемый формат файла. Разрешены: %s", strings.Join(sortedKeys(allowedImageExtensions), ", ")), false
	}

	// Для определения типа достаточно первых 261 байт
	head := make([]byte, 261)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "не удалось прочитать файл", false
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return "не удалось определить тип файла. Разрешены только изображения", false
	}
	if !allowedImageTypes[kind.MIME.Value] {
		return fmt.Sprintf("неподдерживаемый тип файла (%s)", kind.MIME.Value), false
	}

	expected := "." + kind.Extension
	if ext != expected && !(ext == ".jpeg" && expected == ".jpg") {
		return fmt.Sprintf("расширение файла (%s) не соответствует реальному типу (%s)", ext, expected), false
	}
	return "", true
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
