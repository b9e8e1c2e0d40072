// ipn-replay floods the notify endpoint with signed notifications, repeating
// order ids on purpose, to exercise the duplicate guard under concurrency.
package main

import (
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/crowdtide/payeer-gateway/internal/payeer"
	"github.com/crowdtide/payeer-gateway/pkg/util/random"
)

var URL, _ = os.LookupEnv("API_URL")
var PORT, _ = os.LookupEnv("API_PORT")
var apiURL = fmt.Sprintf("http://%s:%s/api/v1", URL, PORT)
var notifyURL = apiURL + "/notify/payeer/"

var merchantID = os.Getenv("PAYEER_MERCHANT_ID")
var secretKey = os.Getenv("PAYEER_SECRET_KEY")
var currency = os.Getenv("PROJECT_CURRENCY")

const (
	workers  = 10
	duration = 30 * time.Second
)

func main() {
	if currency == "" {
		currency = "USD"
	}

	// Small pool of order ids so that workers collide on the same
	// transaction and the duplicate no-op path gets real traffic.
	orderIDs := make([]string, 5)
	for i := range orderIDs {
		id, err := random.String(16)
		if err != nil {
			fmt.Println("Error generating order id:", err)
			os.Exit(1)
		}
		orderIDs[i] = id
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			start := time.Now()
			for time.Since(start) < duration {
				orderID := orderIDs[rand.Intn(len(orderIDs))]
				body, err := sendNotification(orderID)
				if err != nil {
					fmt.Println("Error sending notification:", err)
				} else {
					fmt.Printf("Notification sent. Order: %s, Response: %s\n", orderID, body)
				}

				time.Sleep(time.Duration(rand.Intn(1000)) * time.Millisecond)
			}
		}()
	}

	wg.Wait()
}

func sendNotification(orderID string) (string, error) {
	form := buildNotification(orderID)

	resp, err := http.PostForm(notifyURL, form)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wrong status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func buildNotification(orderID string) url.Values {
	now := time.Now().Format("02.01.2006 15:04:05")
	amount := fmt.Sprintf("%.2f", rand.Float64()*100+1)

	fields := map[string]string{
		payeer.FieldOperationID:      fmt.Sprintf("%d", rand.Int63()),
		payeer.FieldOperationPS:      "2609",
		payeer.FieldOperationDate:    now,
		payeer.FieldOperationPayDate: now,
		payeer.FieldShop:             merchantID,
		payeer.FieldOrderID:          orderID,
		payeer.FieldAmount:           amount,
		payeer.FieldCurrency:         currency,
		payeer.FieldDescription:      "UkVQTEFZ",
		payeer.FieldStatus:           payeer.StatusSuccess,
	}

	sign := payeer.Sign([]string{
		fields[payeer.FieldOperationID],
		fields[payeer.FieldOperationPS],
		fields[payeer.FieldOperationDate],
		fields[payeer.FieldOperationPayDate],
		fields[payeer.FieldShop],
		fields[payeer.FieldOrderID],
		fields[payeer.FieldAmount],
		fields[payeer.FieldCurrency],
		fields[payeer.FieldDescription],
		fields[payeer.FieldStatus],
	}, secretKey)

	form := url.Values{}
	for name, value := range fields {
		form.Set(name, value)
	}
	form.Set(payeer.FieldSign, sign)
	return form
}
