/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/wso2/site-engagement-service/internal/system/config"
	"github.com/wso2/site-engagement-service/internal/system/constants"
	"github.com/wso2/site-engagement-service/internal/system/log"
	"github.com/wso2/site-engagement-service/internal/system/managers"
	"github.com/wso2/site-engagement-service/internal/system/workers"
)

const configFile = "config/deployment.yaml"

func main() {
	home := getServiceHome()

	envFiles, _ := filepath.Glob(filepath.Join(home, "config", "*.env"))
	if len(envFiles) > 0 {
		_ = godotenv.Load(envFiles...)
	}

	conf, err := config.LoadConfig(home, configFile)
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize runtime configurations.
	if err := config.InitializeRuntime(home, conf); err != nil {
		stdlog.Fatalf("Failed to initialize runtime: %v", err)
	}

	if err := log.Init(conf.Log.LogLevel); err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := log.GetLogger()

	checkDataSourceConfig(conf)

	// Start the background sweep for expired page views.
	workers.StartPageViewSweeper()

	serverAddr := fmt.Sprintf("%s:%d", conf.Addr.Host, conf.Addr.Port)
	mux := enableCORS(initMultiplexer(), conf)

	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener", log.Error(err))
	}
	logger.Info(fmt.Sprintf("Site engagement service started on: %s", serverAddr))

	server := &http.Server{Handler: mux}
	if err := server.Serve(ln); err != nil {
		logger.Fatal("Failed to serve requests", log.Error(err))
	}
}

// checkDataSourceConfig verifies that the Postgres settings are present before
// any request needs a connection.
func checkDataSourceConfig(conf *config.Config) {
	ds := conf.DataSource
	if ds.Hostname == "" || ds.Port == 0 || ds.Name == "" || ds.Username == "" {
		stdlog.Fatal("One or more PostgreSQL configuration values are missing")
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Fatal("Failed to register the services", log.Error(err))
	}

	return mux
}

func enableCORS(next http.Handler, conf *config.Config) http.Handler {

	allowedOrigin := "*"
	if len(conf.Auth.CORSAllowedOrigins) > 0 {
		allowedOrigin = conf.Auth.CORSAllowedOrigins[0]
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getServiceHome() string {

	homeFlag := flag.String("home", "", "Path to the service home directory")
	flag.Parse()

	if *homeFlag != "" {
		return *homeFlag
	}

	dir, err := os.Getwd()
	if err != nil {
		stdlog.Fatalf("Failed to get current working directory: %v", err)
	}
	return dir
}
