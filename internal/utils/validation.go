package utils

import (
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags on gin's validator:
//
//	objectid - a 24 character hex object id
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
				return primitive.IsValidObjectID(fl.Field().String())
			})
		}
	})
}

// BindBody binds the request body into obj. Unlike c.ShouldBind it also reads
// urlencoded bodies on DELETE requests, which net/http leaves unparsed.
func BindBody(c *gin.Context, obj interface{}) error {
	if c.Request.Method != "DELETE" || c.ContentType() != binding.MIMEPOSTForm {
		return c.ShouldBind(obj)
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return err
	}
	values, err := url.ParseQuery(strings.TrimSpace(string(data)))
	if err != nil {
		return err
	}
	if err := binding.MapFormWithTag(obj, values, "form"); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(obj)
}
