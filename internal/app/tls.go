package app

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const (
	serialNumber = 1
	yearsGrant   = 1
	rsaLen       = 4096
	certsPerm    = 0600
	certsDirPerm = 0755
)

// CreateCertificates writes a self-signed certificate and key for local
// HTTPS. Meant for development; production deployments terminate TLS in
// front of the service.
func CreateCertificates(certPath, keyPath string, logger *zap.SugaredLogger) error {
	cert := &x509.Certificate{
		SerialNumber: big.NewInt(serialNumber),
		Subject: pkix.Name{
			Organization: []string{"applink"},
		},
		IPAddresses:  []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
		NotBefore:    time.Now(),
		NotAfter:     time.Now().AddDate(yearsGrant, 0, 0),
		SubjectKeyId: []byte{1, 2, 3, 4, 6},
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, rsaLen)
	if err != nil {
		return fmt.Errorf("error generating RSA key: %w", err)
	}

	certBytes, err := x509.CreateCertificate(rand.Reader, cert, cert, &privateKey.PublicKey, privateKey)
	if err != nil {
		return fmt.Errorf("error creating certificate: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(certPath), certsDirPerm); err != nil {
		return fmt.Errorf("error creating certs dir: %w", err)
	}

	if err := writePEM(certPath, "CERTIFICATE", certBytes, logger); err != nil {
		return err
	}

	return writePEM(keyPath, "RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(privateKey), logger)
}

func writePEM(path, blockType string, data []byte, logger *zap.SugaredLogger) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, certsPerm)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", path, err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			logger.Errorw("error closing pem file", "path", path, "error", err)
		}
	}()

	if err := pem.Encode(file, &pem.Block{Type: blockType, Bytes: data}); err != nil {
		return fmt.Errorf("error encoding %s: %w", path, err)
	}

	return nil
}
