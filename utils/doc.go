// Package utils contains small numeric helpers shared by the tf3d packages.
package utils
