package utils

import (
	"bytes"
	"crypto/aes"
	"encoding/base64"
	"errors"
	"fmt"
	"github.com/jlexm/turtle-tracker-svc/common"
	"go.uber.org/zap"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// GetNextPageToken encrypts the cursor data with AES block by block.
// The key is the current unix timestamp (length 10) followed by key (length 22), and the
// token is the base64 value of "timestamp::::encryptedValue".
func GetNextPageToken(data string, key string) (string, error) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	cipher, err := aes.NewCipher([]byte(timestamp + key))
	if err != nil {
		return "", err
	}
	blockSize := cipher.BlockSize()
	blockCount := (len(data) + blockSize - 1) / blockSize
	if blockCount == 0 {
		blockCount = 1
	}
	// data is zero padded up to a whole number of blocks
	plain := make([]byte, blockCount*blockSize)
	copy(plain, data)
	out := make([]byte, len(plain))
	for blockStart := 0; blockStart < len(plain); blockStart += blockSize {
		cipher.Encrypt(out[blockStart:blockStart+blockSize], plain[blockStart:blockStart+blockSize])
	}

	token := timestamp + common.ColonSeparator + string(out)

	return base64.StdEncoding.EncodeToString([]byte(token)), nil
}

// DecodeNextPageToken reverses GetNextPageToken using the timestamp carried in the token.
func DecodeNextPageToken(token string, key string) (string, error) {
	decodedToken, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", err
	}
	decodedTokens := strings.SplitN(string(decodedToken), common.ColonSeparator, 2)
	if len(decodedTokens) != 2 {
		return "", errors.New("malformed page token")
	}
	cipher, err := aes.NewCipher([]byte(decodedTokens[0] + key))
	if err != nil {
		return "", err
	}
	encrypted := []byte(decodedTokens[1])
	blockSize := cipher.BlockSize()
	if len(encrypted) == 0 || len(encrypted)%blockSize != 0 {
		return "", errors.New("malformed page token")
	}
	data := make([]byte, len(encrypted))
	for blockStart := 0; blockStart < len(encrypted); blockStart += blockSize {
		cipher.Decrypt(data[blockStart:blockStart+blockSize], encrypted[blockStart:blockStart+blockSize])
	}

	return string(bytes.Trim(data, "\x00")), nil
}

// ValidatePageToken checks that the page_token header decodes, has the expected shape
// and has not expired.
func ValidatePageToken(request *http.Request, header string) []string {
	var errs []string
	decodedToken, err := base64.StdEncoding.DecodeString(request.Header.Get(header))
	if err != nil {
		return append(errs, fmt.Sprintf("Invalid header value, unable to decrypt header : %v", header))
	}
	decodedTokens := strings.SplitN(string(decodedToken), common.ColonSeparator, 2)
	if len(decodedTokens) != 2 || len(decodedTokens[0]) != 10 || len([]byte(decodedTokens[1])) < aes.BlockSize {
		return append(errs, fmt.Sprintf("Invalid %s header : %v", header, request.Header.Get(header)))
	}
	timestamp, err := strconv.ParseInt(decodedTokens[0], 10, 64)
	if err != nil {
		return append(errs, fmt.Sprintf("Invalid %s : %v", header, request.Header.Get(header)))
	}
	age := time.Since(time.Unix(timestamp, 0)).Minutes()
	if age < 0 || age > common.ExpireTokenDuration {
		errs = append(errs, fmt.Sprintf("Header %s expired : %v", header, request.Header.Get(header)))
	}

	return errs
}

// AddPaginationHeaderIfNotAdded returns the pagination headers present on the request so they get validated.
func AddPaginationHeaderIfNotAdded(request *http.Request) []string {
	var headers []string
	if request.Header.Get(common.HeaderPageToken) != "" {
		headers = append(headers, common.HeaderPageToken)
	}
	if request.Header.Get(common.HeaderPageSize) != "" {
		headers = append(headers, common.HeaderPageSize)
	}

	return headers
}

// GetPageSizeFromHeader will get page size from header `page_size` if added in request, else will be default.
// in case of any error, pageSize will be return -1
func GetPageSizeFromHeader(request *http.Request, logger *zap.SugaredLogger) int {
	pageSizeStr := request.Header.Get(common.HeaderPageSize)
	if pageSizeStr == "" {
		logger.Debugf("default page_size %d considered", common.DefaultPageSize)

		return common.DefaultPageSize
	}
	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil {
		logger.Errorf("Received page_size as %s , err is %v", pageSizeStr, err)

		return common.ReturnError
	}
	logger.Debugf("Received page_size %d", pageSize)

	return pageSize
}

// GetStartAfterFromHeader decodes the page_token header, empty when the first page is asked for.
func GetStartAfterFromHeader(request *http.Request, key string) (string, error) {
	token := request.Header.Get(common.HeaderPageToken)
	if token == "" {
		return "", nil
	}

	return DecodeNextPageToken(token, key)
}

// GetNextPageTokenFor returns the next_page_token for a page, empty when this was the last page.
func GetNextPageTokenFor(lastID string, returned int, pageSize int, key string) (string, error) {
	if lastID == "" || returned < pageSize {
		return "", nil
	}

	return GetNextPageToken(lastID, key)
}
