package config

import (
	"os"
	"reflect"
	"testing"
	"time"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		want              *ServerConfig
		name              string
		configFileContent string
	}{
		{
			name: "test configs merge",
			configFileContent: `{
				"server_address": "localhost:9090",
				"base_url": "https://applink.example.com",
				"metadata_timeout": 5000000000,
				"enable_https": true
			}`,
			want: &ServerConfig{
				RunAddr:          "localhost:9090",
				BaseURL:          "https://applink.example.com",
				MetadataTimeout:  5 * time.Second,
				MetadataCacheTTL: time.Hour,
				TLSCertPath:      "./certs/cert.pem",
				TLSKeyPath:       "./certs/private.pem",
				EnableHTTPS:      true,
				ProfileMode:      false,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile, err := os.CreateTemp(t.TempDir(), "config-*.json")
			if err != nil {
				t.Error(err)
			}

			if _, err := configFile.WriteString(tt.configFileContent); err != nil {
				t.Error(err)
			}

			if err := configFile.Close(); err != nil {
				t.Error(err)
			}

			//nolint // only for testing purposes hack
			os.Args = append(os.Args, "-c", configFile.Name())

			got, err := ParseFlags()
			if err != nil {
				t.Error(err)
			}
			tt.want.Config = configFile.Name()

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFlags() = %v, want %v", got, tt.want)
			}
		})
	}
}
