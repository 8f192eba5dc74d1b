package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// AssetDirs are searched after the local working-directory folders.
var AssetDirs []string

var textureExtensions = []string{".tex", ".png", ".jpg", ".jpeg"}

// DiscoverAssets registers customPath, or the first standard install
// location that exists, as an asset directory.
func DiscoverAssets(customPath string) string {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			AssetDirs = append(AssetDirs, customPath)
			Info("Using custom assets path: %s", customPath)
			return customPath
		}
		Warn("Custom assets path NOT FOUND: %s", customPath)
		Info("Falling back to automatic discovery...")
	}

	home, _ := os.UserHomeDir()
	possiblePaths := []string{
		filepath.Join(home, ".local/share/starfield/assets"),
		"/usr/local/share/starfield/assets",
		"/usr/share/starfield/assets",
	}
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		possiblePaths = append([]string{filepath.Join(dataHome, "starfield/assets")}, possiblePaths...)
	}

	for _, p := range possiblePaths {
		if _, err := os.Stat(p); err == nil {
			AssetDirs = append(AssetDirs, p)
			Info("Discovered starfield assets at: %s", p)
			return p
		}
	}

	Debug("No installed asset folder found, relying on local and built-in sprites")
	return ""
}

func ResolveAssetPath(relPath string) string {
	localPath := filepath.Join("assets", relPath)
	if _, err := os.Stat(localPath); err == nil {
		return localPath
	}

	for _, dir := range AssetDirs {
		p := filepath.Join(dir, relPath)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return localPath
}

// FindTextureFile looks up a sprite by logical name, with or without a
// "materials/" prefix or extension. It returns "" when nothing matches.
func FindTextureFile(name string) string {
	if name == "" {
		return ""
	}

	cleanName := strings.TrimPrefix(name, "materials/")
	cleanName = strings.TrimSuffix(cleanName, filepath.Ext(cleanName))

	searchDirs := []string{
		"tmp/materials",
		"tmp",
		"assets/materials",
		"assets",
	}
	for _, dir := range AssetDirs {
		searchDirs = append(searchDirs, filepath.Join(dir, "materials"), dir)
	}

	for _, dir := range searchDirs {
		if p := filepath.Join(dir, name); hasTextureExt(name) && isFile(p) {
			return p
		}
		for _, ext := range textureExtensions {
			if p := filepath.Join(dir, cleanName+ext); isFile(p) {
				return p
			}
		}
	}

	// Deep search, sprites may sit in nested atlas folders.
	targetBase := filepath.Base(cleanName)
	dirsToWalk := append([]string{"assets"}, AssetDirs...)
	for _, d := range dirsToWalk {
		if _, err := os.Stat(d); err != nil {
			continue
		}
		var foundPath string
		filepath.Walk(d, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			base := filepath.Base(path)
			ext := filepath.Ext(base)
			if strings.TrimSuffix(base, ext) == targetBase && hasTextureExt(base) {
				foundPath = path
				return filepath.SkipAll
			}
			return nil
		})
		if foundPath != "" {
			return foundPath
		}
	}

	return ""
}

func hasTextureExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range textureExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
