// Copyright 2025 Genmind Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the core types. Timestamps are stored with
// microsecond precision, matching the precision used by index keys.
var (
	IDMUS        = idMUS{}
	TenantMUS    = tenantMUS{}
	FAQRecordMUS = faqRecordMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(v).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

type tenantMUS struct{}

func (tenantMUS) Marshal(t Tenant, bs []byte) int {
	n := IDMUS.Marshal(t.Id, bs)
	n += ord.String.Marshal(t.Domain, bs[n:])
	n += ord.String.Marshal(t.Name, bs[n:])
	n += ord.String.Marshal(t.Email, bs[n:])
	n += marshalTime(t.CreatedAt, bs[n:])
	return n
}

func (tenantMUS) Unmarshal(bs []byte) (t Tenant, n int, err error) {
	var n1 int
	t.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	t.Domain, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	t.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	t.Email, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	t.CreatedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	return
}

func (tenantMUS) Size(t Tenant) int {
	size := IDMUS.Size(t.Id)
	size += ord.String.Size(t.Domain)
	size += ord.String.Size(t.Name)
	size += ord.String.Size(t.Email)
	size += sizeTime(t.CreatedAt)
	return size
}

type faqRecordMUS struct{}

func (faqRecordMUS) Marshal(r FAQRecord, bs []byte) int {
	n := IDMUS.Marshal(r.Id, bs)
	n += IDMUS.Marshal(r.TenantId, bs[n:])
	n += ord.String.Marshal(r.SourceFile, bs[n:])
	n += ord.String.Marshal(r.Question, bs[n:])
	n += ord.String.Marshal(r.Answer, bs[n:])
	n += ord.String.Marshal(r.RefArticle, bs[n:])
	n += varint.Uint64.Marshal(r.Views, bs[n:])
	n += marshalTime(r.CreatedAt, bs[n:])
	n += marshalTime(r.UpdatedAt, bs[n:])
	return n
}

func (faqRecordMUS) Unmarshal(bs []byte) (r FAQRecord, n int, err error) {
	var n1 int
	r.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	r.TenantId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.SourceFile, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Question, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Answer, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.RefArticle, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Views, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.CreatedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.UpdatedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	return
}

func (faqRecordMUS) Size(r FAQRecord) int {
	size := IDMUS.Size(r.Id)
	size += IDMUS.Size(r.TenantId)
	size += ord.String.Size(r.SourceFile)
	size += ord.String.Size(r.Question)
	size += ord.String.Size(r.Answer)
	size += ord.String.Size(r.RefArticle)
	size += varint.Uint64.Size(r.Views)
	size += sizeTime(r.CreatedAt)
	size += sizeTime(r.UpdatedAt)
	return size
}
