// Copyright 2025 walteh LLC
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

package operation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/replacecontent/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ✍️ Update writes the final text of every modified, valid unit back to its
// file. Invalid units are left alone and reported with ErrInvalidContent
// after the valid ones are written.
func (o *Operator) Update(ctx context.Context) (*Result, error) {
	res, err := o.run(ctx)
	if err != nil {
		return nil, err
	}

	err = o.runner.Each(ctx, len(res.Modified), func(ctx context.Context, i int) error {
		u := res.Modified[i]
		if u.FilePath == "" {
			return nil
		}
		if err := o.status.WriteFileAtomic(ctx, u.FilePath, []byte(u.Next())); err != nil {
			return errors.Errorf("writing %s: %w", u.FilePath, err)
		}
		if _, err := o.status.RemoveTempFile(ctx, u.FilePath); err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Str("path", u.FilePath).Msg("temp file not removed")
		}

		info := unitInfo(u)
		info.Status = status.StatusUpdated
		o.status.TrackFile(ctx, u.Identifier, info)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("updating content: %w", err)
	}

	for _, u := range res.Units {
		st := unitInfo(u).Status
		if st == status.StatusModified && u.FilePath != "" {
			st = status.StatusUpdated
		}
		o.logUnit(ctx, u, st)
	}
	o.printInvalid(res)

	ul := status.NewUserLogger(ctx)
	ul.LogStateChange(updateMessage(len(res.Modified)))
	ul.LogSummary(o.status.Summary())

	return res, invalidError(res)
}

func updateMessage(n int) string {
	switch n {
	case 0:
		return "no files needed updating"
	case 1:
		return "updated 1 file"
	default:
		return fmt.Sprintf("updated %d files", n)
	}
}
