package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	baseURL = "http://localhost:8080"
)

func main() {
	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")

	// 1. Health
	fmt.Println("1. Health check...")
	if !sendRequest("GET", "/health", nil) {
		fmt.Println("FAILED: Health check")
		os.Exit(1)
	}
	fmt.Println("PASSED: Health check")

	// 2. Resolve a disputed candidate group
	fmt.Println("2. Resolving candidates...")
	resolvePayload := map[string]interface{}{
		"text": "El hermano de Pedro tenía los ojos verdes. Juan lo miraba.",
		"mentions": []map[string]interface{}{
			{"entity_id": "Pedro", "text": "Pedro", "start": 14, "end": 19, "sentence_idx": 0},
			{"entity_id": "Juan", "text": "Juan", "start": 44, "end": 48, "sentence_idx": 1},
		},
		"candidates": []map[string]interface{}{
			{
				"attribute_type": "eye_color", "value": "verdes",
				"text_evidence": "los ojos verdes", "sentence_idx": 0,
				"start": 26, "end": 41, "extractor_type": "dependency",
				"assigned_entity_id": "Pedro", "assignment_source": "genitive",
				"base_confidence": 0.92,
			},
			{
				"attribute_type": "eye_color", "value": "verdes",
				"text_evidence": "los ojos verdes", "sentence_idx": 0,
				"start": 26, "end": 41, "extractor_type": "pattern",
				"assigned_entity_id": "Juan", "assignment_source": "proximity",
				"base_confidence": 0.6,
			},
		},
	}
	if !sendRequest("POST", "/resolve", resolvePayload) {
		fmt.Println("FAILED: Resolve")
		os.Exit(1)
	}
	fmt.Println("PASSED: Resolve")

	// 3. Consistency check over contradictory attributes
	fmt.Println("3. Checking consistency...")
	consistencyPayload := map[string]interface{}{
		"attributes": []map[string]interface{}{
			{
				"entity_name": "Juan", "attribute_key": "eye_color", "value": "azules",
				"source_text": "sus ojos azules", "chapter_id": 1, "confidence": 0.9,
			},
			{
				"entity_name": "Juan", "attribute_key": "eye_color", "value": "marrones",
				"source_text": "aquellos ojos marrones", "chapter_id": 5, "confidence": 0.9,
			},
		},
	}
	if !sendRequest("POST", "/consistency", consistencyPayload) {
		fmt.Println("FAILED: Consistency")
		os.Exit(1)
	}
	fmt.Println("PASSED: Consistency")
}

func sendRequest(method, endpoint string, payload interface{}) bool {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false
	}

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("Response: %s\n", string(respBody))

	return true
}
