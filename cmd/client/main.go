package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"gitlab.com/dirk.krummacker/contactbook-service/pkg/model"
)

// contactFields are the form values sent with every POST and PUT request.
var contactFields = map[string]string{
	"name":     "Marcus Antonius",
	"email":    "marcus@example.com",
	"address":  "Forum Romanum 1",
	"phone":    "+39 999 777 555",
	"favorite": "true",
}

// Usage example on the command line:
// > go run main.go -url=http://localhost:8080 -avatar=portrait.png
func main() {
	baseURL := flag.String("url", "http://localhost:8080", "the base URL of the contact book service")
	avatar := flag.String("avatar", "", "an image file to upload with every POST request")
	flag.Parse()
	contactsURL := *baseURL + "/api/v1/contacts"

	var avatarBytes []byte
	if *avatar != "" {
		var err error
		if avatarBytes, err = os.ReadFile(*avatar); err != nil {
			fmt.Println("could not read avatar file", err)
			panic(err)
		}
	}

	fmt.Println()
	fmt.Println("  Elements      POST       PUT       GET    DELETE ")
	fmt.Println("---------------------------------------------------")
	sizes := []int{100, 500, 1000, 5000, 10000}
	for _, loops := range sizes {
		firstID, _ := sendPostRequest(contactsURL, avatarBytes)
		fmt.Printf("%10d", loops)
		{
			// POST requests
			var duration int64
			for i := 0; i < loops; i++ {
				_, d := sendPostRequest(contactsURL, avatarBytes)
				duration += d
			}
			fmt.Printf("%10d", duration/int64(loops*1000))
		}
		{
			// PUT requests
			f := func(id int64) int64 {
				body, contentType := multipartBody(map[string]string{"phone": "+39 111 222 333"}, nil)
				return sendPutGetDeleteRequest(contactsURL, id, http.MethodPut, body, contentType)
			}
			callInLoop(firstID, loops, f)
		}
		{
			// GET requests
			f := func(id int64) int64 {
				return sendPutGetDeleteRequest(contactsURL, id, http.MethodGet, nil, "")
			}
			callInLoop(firstID, loops, f)
		}
		{
			// DELETE requests
			f := func(id int64) int64 {
				return sendPutGetDeleteRequest(contactsURL, id, http.MethodDelete, nil, "")
			}
			callInLoop(firstID, loops, f)
		}
		sendPutGetDeleteRequest(contactsURL, firstID, http.MethodDelete, nil, "")
		fmt.Println()
	}
}

func callInLoop(firstID int64, loops int, f func(id int64) int64) {
	ids := createRandomSliceWithIDs(firstID+1, loops)
	var duration int64
	for _, id := range ids {
		d := f(id)
		duration += d
	}
	fmt.Printf("%10d", duration/int64(loops*1000))
}

func createRandomSliceWithIDs(firstID int64, loops int) []int64 {
	ids := make([]int64, 0, loops)
	for i := 0; i < loops; i++ {
		ids = append(ids, firstID+int64(i))
	}
	rand.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	return ids
}

// multipartBody encodes the form values and, if present, the avatar as a multipart body.
func multipartBody(values map[string]string, avatar []byte) (io.Reader, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range values {
		writer.WriteField(k, v)
	}
	if avatar != nil {
		part, err := writer.CreateFormFile("avatarFile", "avatar.png")
		if err != nil {
			panic(err)
		}
		part.Write(avatar)
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

func sendPostRequest(contactsURL string, avatar []byte) (int64, int64) {
	body, contentType := multipartBody(contactFields, avatar)
	resBody, duration := sendRequest(http.MethodPost, contactsURL, body, contentType)
	var envelope model.Envelope[model.ContactData]
	err := json.Unmarshal(resBody, &envelope)
	if err != nil {
		fmt.Println("could not unmarshal JSON", err)
		panic(err)
	}
	if envelope.Status != "success" {
		panic(fmt.Sprintf("could not create contact: %s", envelope.Message))
	}
	return envelope.Data.Contact.Id, duration
}

func sendPutGetDeleteRequest(contactsURL string, id int64, method string, bodyReader io.Reader, contentType string) int64 {
	requestURL := fmt.Sprintf("%s/%d", contactsURL, id)
	_, duration := sendRequest(method, requestURL, bodyReader, contentType)
	return duration
}

func sendRequest(method string, requestURL string, bodyReader io.Reader, contentType string) ([]byte, int64) {
	req, err := http.NewRequest(method, requestURL, bodyReader)
	if err != nil {
		fmt.Println("could not create request", err)
		panic(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	before := time.Now().UnixNano()
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("error making http request", err)
		panic(err)
	}
	defer res.Body.Close()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Println("could not read response body", err)
		panic(err)
	}
	after := time.Now().UnixNano()
	return resBody, after - before
}
