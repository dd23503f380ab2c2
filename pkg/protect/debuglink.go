//go:build !production

package protect

const debugLinkBuild = true
