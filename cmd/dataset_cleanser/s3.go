package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Client is the subset of the S3 API used for inputs and outputs.
type S3Client interface {
	ListObjectsV2(*s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error)
	GetObject(*s3.GetObjectInput) (*s3.GetObjectOutput, error)
	PutObject(*s3.PutObjectInput) (*s3.PutObjectOutput, error)
}

// newS3Client builds a client from the shared AWS config and environment.
var newS3Client = func() (S3Client, error) {
	sess, err := session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create AWS session: %w", err)
	}
	return s3.New(sess), nil
}

func isS3URI(s string) bool {
	return strings.HasPrefix(s, "s3://")
}

// parseS3URI splits `s3://bucket/key` into its bucket and key.
func parseS3URI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", errors.New(fmt.Sprintf("invalid S3 URI: %s", uri))
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}

// listS3Texts
// Lists every `.txt` object under prefix, following continuation tokens
// until the listing is exhausted.
func listS3Texts(svc S3Client, bucket, prefix string) ([]PathInfo, error) {
	pathInfos := make([]PathInfo, 0)
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}
	for {
		output, err := svc.ListObjectsV2(input)
		if err != nil {
			return nil, fmt.Errorf("cannot list s3://%s/%s: %w",
				bucket, prefix, err)
		}
		for _, object := range output.Contents {
			key := aws.StringValue(object.Key)
			if !strings.HasSuffix(key, ".txt") {
				continue
			}
			pathInfos = append(pathInfos, PathInfo{
				Path:    "s3://" + bucket + "/" + key,
				Size:    aws.Int64Value(object.Size),
				ModTime: aws.TimeValue(object.LastModified),
				Remote:  true,
			})
		}
		if !aws.BoolValue(output.IsTruncated) ||
			output.NextContinuationToken == nil {
			break
		}
		input.ContinuationToken = output.NextContinuationToken
	}
	if len(pathInfos) == 0 {
		return nil, errors.New(fmt.Sprintf(
			"s3://%s/%s does not contain any .txt files", bucket, prefix))
	}
	return pathInfos, nil
}

func openS3Object(svc S3Client, uri string) (io.ReadCloser, error) {
	bucket, key, err := parseS3URI(uri)
	if err != nil {
		return nil, err
	}
	output, err := svc.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot fetch %s: %w", uri, err)
	}
	return output.Body, nil
}

// putS3Object uploads the bytes written by write to uri.
func putS3Object(svc S3Client, uri string,
	write func(io.Writer) (int64, error)) (int64, error) {
	bucket, key, err := parseS3URI(uri)
	if err != nil {
		return 0, err
	}
	if key == "" || strings.HasSuffix(key, "/") {
		return 0, errors.New(fmt.Sprintf("S3 output needs an object key: %s",
			uri))
	}
	var buf bytes.Buffer
	written, err := write(&buf)
	if err != nil {
		return written, err
	}
	_, err = svc.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return 0, fmt.Errorf("cannot upload %s: %w", uri, err)
	}
	return written, nil
}
